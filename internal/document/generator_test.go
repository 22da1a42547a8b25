package document

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dcontreras/workshop-management/internal/attention"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDocumentGenerator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DocumentGenerator Suite")
}

var _ = Describe("Generator", func() {
	var (
		dir       string
		generator *Generator
	)

	newAttention := func(id int64) *attention.Attention {
		return &attention.Attention{
			ID:          id,
			ClientID:    1,
			Plate:       "AB1234",
			Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Description: "cambio de aceite",
			AmountCLP:   45000,
		}
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "certificados")
		Expect(err).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		generator = NewGenerator(dir, lg)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).NotTo(HaveOccurred())
	})

	It("should write the PDF under the configured directory with the id in the name", func() {
		path, err := generator.Generate(newAttention(7))

		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, "certificado_7.pdf")))

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})

	It("should resolve the same path without generating", func() {
		Expect(generator.Path(7)).To(Equal(filepath.Join(dir, "certificado_7.pdf")))
	})

	It("should overwrite the artifact for the same attention id", func() {
		first, err := generator.Generate(newAttention(7))
		Expect(err).NotTo(HaveOccurred())

		second, err := generator.Generate(newAttention(7))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})

	It("should create the directory when it does not exist yet", func() {
		nested := filepath.Join(dir, "a", "b")
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		g := NewGenerator(nested, lg)

		_, err := g.Generate(newAttention(1))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should propagate an I/O error instead of claiming success", func() {
		blocked := filepath.Join(dir, "file")
		Expect(os.WriteFile(blocked, []byte("x"), 0o644)).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		g := NewGenerator(blocked, lg)

		_, err := g.Generate(newAttention(1))
		Expect(err).To(HaveOccurred())
	})
})
