package expense

import (
	"path/filepath"
	"strings"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("LocalArchive", func() {
	var (
		tmpDir  string
		archive Archive
	)

	ginkgo.BeforeEach(func() {
		tmpDir = ginkgo.GinkgoT().TempDir()
		var err error
		archive, err = NewLocalArchive(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	ginkgo.Describe("Save", func() {
		var (
			filename string
			data     []byte
			saved    string
			err      error
		)

		ginkgo.BeforeEach(func() {
			filename = "receipt.jpg"
			data = []byte("image content")
		})

		ginkgo.JustBeforeEach(func() {
			saved, err = archive.Save(filename, data)
		})

		ginkgo.When("saving succeeds", func() {
			ginkgo.It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			ginkgo.It("should return the stored name", func() {
				Expect(saved).To(Equal(filename))
			})

			ginkgo.It("should write the file to disk", func() {
				filePath := filepath.Join(tmpDir, filename)
				Expect(filePath).To(BeAnExistingFile())
			})
		})
	})

	ginkgo.Describe("Get", func() {
		var (
			name string
			data []byte
			err  error
		)

		ginkgo.JustBeforeEach(func() {
			data, err = archive.Get(name)
		})

		ginkgo.When("the file exists", func() {
			ginkgo.BeforeEach(func() {
				name = "receipt.jpg"
				_, saveErr := archive.Save(name, []byte("image content"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			ginkgo.It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			ginkgo.It("should return the stored data", func() {
				Expect(string(data)).To(Equal("image content"))
			})
		})

		ginkgo.When("the file does not exist", func() {
			ginkgo.BeforeEach(func() {
				name = "nonexistent.jpg"
			})

			ginkgo.It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("reading file"))
			})
		})
	})

	ginkgo.Describe("Delete", func() {
		var (
			name string
			err  error
		)

		ginkgo.JustBeforeEach(func() {
			err = archive.Delete(name)
		})

		ginkgo.When("the file exists", func() {
			ginkgo.BeforeEach(func() {
				name = "receipt.jpg"
				_, saveErr := archive.Save(name, []byte("image content"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			ginkgo.It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			ginkgo.It("should remove the file from disk", func() {
				filePath := filepath.Join(tmpDir, name)
				Expect(filePath).NotTo(BeAnExistingFile())
			})
		})

		ginkgo.When("the file does not exist", func() {
			ginkgo.BeforeEach(func() {
				name = "nonexistent.jpg"
			})

			ginkgo.It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("deleting file"))
			})
		})
	})

	ginkgo.Describe("NewLocalArchive", func() {
		ginkgo.When("the directory does not exist", func() {
			ginkgo.It("should create it", func() {
				path := filepath.Join(ginkgo.GinkgoT().TempDir(), "receipts")
				_, err := NewLocalArchive(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(path).To(BeADirectory())
			})
		})
	})
})

var _ = ginkgo.Describe("sanitizeFilename", func() {
	ginkgo.It("should keep a plain filename", func() {
		Expect(sanitizeFilename("receipt.jpg")).To(Equal("receipt.jpg"))
	})

	ginkgo.It("should strip special characters", func() {
		Expect(sanitizeFilename("my/receipt:2024?.jpg")).To(Equal("myreceipt2024.jpg"))
	})

	ginkgo.It("should collapse whitespace", func() {
		Expect(sanitizeFilename("photo   from    phone.png")).To(Equal("photo from phone.png"))
	})

	ginkgo.It("should truncate long names but keep the extension", func() {
		long := strings.Repeat("a", 80) + ".jpg"
		sanitized := sanitizeFilename(long)
		Expect(sanitized).To(HaveLen(54))
		Expect(sanitized).To(HaveSuffix(".jpg"))
	})

	ginkgo.It("should fall back to a default name", func() {
		Expect(sanitizeFilename("写真.jpg")).To(Equal("receipt.jpg"))
	})

	ginkgo.It("should handle a name with no extension", func() {
		Expect(sanitizeFilename("IMG_0042")).To(Equal("IMG_0042"))
	})
})
