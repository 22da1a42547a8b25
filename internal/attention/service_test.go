package attention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAttentionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttentionService Suite")
}

// mockRepository mimics the transactional contract: the attention is recorded
// only when the issue callback succeeds.
type mockRepository struct {
	committed []*Attention
	nextID    int64
	exists    map[int64]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, exists: make(map[int64]bool)}
}

func (m *mockRepository) RegisterWithCertificate(a *Attention, issue func(a *Attention) (string, error)) (string, error) {
	a.ID = m.nextID
	path, err := issue(a)
	if err != nil {
		a.ID = 0
		return "", err
	}
	m.nextID++
	m.committed = append(m.committed, a)
	m.exists[a.ID] = true
	return path, nil
}

func (m *mockRepository) Exists(attentionID int64) (bool, error) {
	return m.exists[attentionID], nil
}

func (m *mockRepository) GetAll() ([]*ListItem, error) { return nil, nil }

func (m *mockRepository) Certificates() ([]*CertificateRow, error) { return nil, nil }

type mockGenerator struct {
	calls int
	fail  bool
}

func (m *mockGenerator) Generate(a *Attention) (string, error) {
	m.calls++
	if m.fail {
		return "", errors.New("render failed")
	}
	return m.Path(a.ID), nil
}

func (m *mockGenerator) Path(attentionID int64) string {
	return fmt.Sprintf("certificados/certificado_%d.pdf", attentionID)
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("AttentionService", func() {
	var (
		service   *Service
		mockRepo  *mockRepository
		generator *mockGenerator
		publisher *mockPublisher
	)

	validDTO := func() RegisterAttentionDTO {
		return RegisterAttentionDTO{
			ClientID:    1,
			Plate:       "AB1234",
			WorkerID:    2,
			Date:        time.Now().AddDate(0, 0, -1),
			Description: "cambio de aceite",
			AmountCLP:   45000,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockRepository()
		generator = &mockGenerator{}
		publisher = &mockPublisher{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(mockRepo, generator, publisher, lg)
	})

	Describe("Register", func() {
		It("should commit the attention and return the id with the artifact path", func() {
			result, err := service.Register(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).To(Equal(int64(1)))
			Expect(result.CertificatePath).To(Equal("certificados/certificado_1.pdf"))
			Expect(mockRepo.committed).To(HaveLen(1))
		})

		It("should publish an audit event after a successful commit", func() {
			_, err := service.Register(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeAttentionRegistered))
		})

		It("should commit nothing when the generator fails", func() {
			generator.fail = true

			_, err := service.Register(validDTO())

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.committed).To(BeEmpty())
			Expect(publisher.published).To(BeEmpty())
		})

		It("should reject a future service date before generating anything", func() {
			dto := validDTO()
			dto.Date = time.Now().AddDate(0, 0, 2)

			_, err := service.Register(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(generator.calls).To(Equal(0))
		})

		It("should reject a non-positive amount", func() {
			dto := validDTO()
			dto.AmountCLP = 0

			_, err := service.Register(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a malformed plate", func() {
			dto := validDTO()
			dto.Plate = "no-plate"

			_, err := service.Register(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("CertificatePath", func() {
		It("should return the deterministic path for a committed attention", func() {
			result, err := service.Register(validDTO())
			Expect(err).NotTo(HaveOccurred())

			path, err := service.CertificatePath(result.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(result.CertificatePath))
		})

		It("should fail with not found for an unknown attention", func() {
			_, err := service.CertificatePath(42)

			Expect(err).To(MatchError(internal.ErrAttentionNotFound))
		})
	})
})
