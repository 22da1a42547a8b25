package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/dcontreras/workshop-management/internal/attention"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAttentionRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttentionRepository Suite")
}

type SQLiteAttention struct {
	ID          int64     `gorm:"primaryKey"`
	ClientID    int64     `gorm:"column:client_id;not null"`
	Plate       string    `gorm:"not null"`
	WorkerID    int64     `gorm:"column:worker_id;not null"`
	Date        time.Time `gorm:"column:date;not null"`
	Description string    `gorm:"not null"`
	AmountCLP   int64     `gorm:"column:amount_clp;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLiteAttention) TableName() string { return "attentions" }

type SQLiteCertificate struct {
	ID          int64     `gorm:"primaryKey"`
	AttentionID int64     `gorm:"column:attention_id;uniqueIndex;not null"`
	IssuedAt    time.Time `gorm:"column:issued_at;not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLiteCertificate) TableName() string { return "certificates" }

var _ = Describe("AttentionRepository", func() {
	var (
		db   *gorm.DB
		repo attention.Repository
	)

	newAttention := func() *attention.Attention {
		return &attention.Attention{
			ClientID:    1,
			Plate:       "AB1234",
			WorkerID:    2,
			Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Description: "cambio de aceite",
			AmountCLP:   45000,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAttention{}, &SQLiteCertificate{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAttentionRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("RegisterWithCertificate", func() {
		It("should insert the attention and its certificate and return the artifact path", func() {
			a := newAttention()

			path, err := repo.RegisterWithCertificate(a, func(committed *attention.Attention) (string, error) {
				Expect(committed.ID).To(BeNumerically(">", 0))
				return "/tmp/certificado_1.pdf", nil
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal("/tmp/certificado_1.pdf"))

			var cert SQLiteCertificate
			Expect(db.First(&cert, "attention_id = ?", a.ID).Error).NotTo(HaveOccurred())
			Expect(cert.Description).To(Equal("Certificado de cambio de aceite"))
			Expect(cert.IssuedAt).To(BeTemporally("==", a.Date))
		})

		It("should roll back the attention when the issue callback fails", func() {
			a := newAttention()

			_, err := repo.RegisterWithCertificate(a, func(*attention.Attention) (string, error) {
				return "", errors.New("disk full")
			})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("disk full"))

			var attentionCount, certCount int64
			Expect(db.Model(&SQLiteAttention{}).Count(&attentionCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&SQLiteCertificate{}).Count(&certCount).Error).NotTo(HaveOccurred())
			Expect(attentionCount).To(Equal(int64(0)))
			Expect(certCount).To(Equal(int64(0)))
		})

		It("should assign ids to the attention from the identity column", func() {
			first := newAttention()
			_, err := repo.RegisterWithCertificate(first, func(a *attention.Attention) (string, error) {
				return "p1", nil
			})
			Expect(err).NotTo(HaveOccurred())

			second := newAttention()
			_, err = repo.RegisterWithCertificate(second, func(a *attention.Attention) (string, error) {
				return "p2", nil
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.ID).To(Equal(first.ID + 1))
		})
	})

	Describe("Exists", func() {
		It("should report committed attentions and nothing else", func() {
			a := newAttention()
			_, err := repo.RegisterWithCertificate(a, func(*attention.Attention) (string, error) {
				return "p", nil
			})
			Expect(err).NotTo(HaveOccurred())

			exists, err := repo.Exists(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.Exists(a.ID + 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
