package postgres

import (
	"testing"
	"time"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/client"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestClientRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ClientRepository Suite")
}

type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteClient struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Phone     string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	BirthDate time.Time `gorm:"column:birth_date"`
	RUT       string    `gorm:"column:rut;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteClient) TableName() string { return "clients" }

type SQLiteVehicle struct {
	Plate     string `gorm:"primaryKey"`
	Make      string `gorm:"not null"`
	Model     string `gorm:"not null"`
	Type      string `gorm:"column:type;not null"`
	Color     string `gorm:"not null"`
	MileageKM int64  `gorm:"column:mileage_km;not null"`
}

func (SQLiteVehicle) TableName() string { return "vehicles" }

type SQLiteClientVehicle struct {
	ID        int64     `gorm:"primaryKey"`
	ClientID  int64     `gorm:"column:client_id;not null"`
	Plate     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteClientVehicle) TableName() string { return "client_vehicles" }

var _ = Describe("ClientRepository", func() {
	var (
		db   *gorm.DB
		repo client.Repository
	)

	newClient := func(userID int64) *client.Client {
		return &client.Client{
			ID:        userID,
			UserID:    userID,
			Phone:     "+56911112222",
			Address:   "Av. Siempre Viva 742",
			BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
			RUT:       "12.345.678-5",
		}
	}

	newVehicle := func(plate string) *client.Vehicle {
		return &client.Vehicle{
			Plate:     plate,
			Make:      "Toyota",
			Model:     "Yaris",
			Type:      "sedan",
			Color:     "rojo",
			MileageKM: 52000,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteClient{}, &SQLiteVehicle{}, &SQLiteClientVehicle{})
		Expect(err).NotTo(HaveOccurred())

		users := []*SQLiteUser{
			{ID: 1, Name: "Maria Perez", Email: "maria@taller.cl", PasswordHash: "x", Role: "client"},
			{ID: 2, Name: "Juan Soto", Email: "juan@taller.cl", PasswordHash: "x", Role: "client"},
		}
		for _, u := range users {
			Expect(db.Create(u).Error).NotTo(HaveOccurred())
		}

		repo = NewClientRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("CreateWithVehicle", func() {
		It("should create the client with the user's id, name and email", func() {
			c := newClient(1)
			err := repo.CreateWithVehicle(c, newVehicle("AB1234"))
			Expect(err).NotTo(HaveOccurred())

			var stored SQLiteClient
			Expect(db.First(&stored, "id = ?", 1).Error).NotTo(HaveOccurred())
			Expect(stored.UserID).To(Equal(int64(1)))
			Expect(stored.Name).To(Equal("Maria Perez"))
			Expect(stored.Email).To(Equal("maria@taller.cl"))
		})

		It("should insert the vehicle and link it to the client", func() {
			err := repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))
			Expect(err).NotTo(HaveOccurred())

			var vehicleCount, linkCount int64
			Expect(db.Model(&SQLiteVehicle{}).Count(&vehicleCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&SQLiteClientVehicle{}).Where("client_id = ?", 1).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(vehicleCount).To(Equal(int64(1)))
			Expect(linkCount).To(Equal(int64(1)))
		})

		It("should not duplicate a vehicle whose plate already exists, but still link it", func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())

			second := newClient(2)
			second.RUT = "9.876.543-3"
			Expect(repo.CreateWithVehicle(second, newVehicle("AB1234"))).NotTo(HaveOccurred())

			var vehicleCount, linkCount int64
			Expect(db.Model(&SQLiteVehicle{}).Where("plate = ?", "AB1234").Count(&vehicleCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&SQLiteClientVehicle{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(vehicleCount).To(Equal(int64(1)))
			Expect(linkCount).To(Equal(int64(2)))
		})

		It("should fail with not found when the user does not exist", func() {
			err := repo.CreateWithVehicle(newClient(99), newVehicle("AB1234"))
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should fail with a conflict when the user is already a client", func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())

			err := repo.CreateWithVehicle(newClient(1), newVehicle("CD5678"))
			Expect(err).To(MatchError(internal.ErrClientAlreadyRegistered))

			// The rejected attempt must leave nothing behind.
			var vehicleCount int64
			Expect(db.Model(&SQLiteVehicle{}).Where("plate = ?", "CD5678").Count(&vehicleCount).Error).NotTo(HaveOccurred())
			Expect(vehicleCount).To(Equal(int64(0)))
		})
	})

	Describe("UpdateWithVehicle", func() {
		BeforeEach(func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())
		})

		It("should update the vehicle in place when the plate is unchanged", func() {
			updated := newVehicle("AB1234")
			updated.Color = "azul"
			updated.MileageKM = 60000

			c := newClient(1)
			c.Phone = "+56933334444"
			Expect(repo.UpdateWithVehicle(1, c, updated)).NotTo(HaveOccurred())

			var v SQLiteVehicle
			Expect(db.First(&v, "plate = ?", "AB1234").Error).NotTo(HaveOccurred())
			Expect(v.Color).To(Equal("azul"))
			Expect(v.MileageKM).To(Equal(int64(60000)))

			var linkCount int64
			Expect(db.Model(&SQLiteClientVehicle{}).Where("client_id = ?", 1).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(linkCount).To(Equal(int64(1)))

			var stored SQLiteClient
			Expect(db.First(&stored, "id = ?", 1).Error).NotTo(HaveOccurred())
			Expect(stored.Phone).To(Equal("+56933334444"))
		})

		It("should add a link for a new plate and preserve the old one", func() {
			Expect(repo.UpdateWithVehicle(1, newClient(1), newVehicle("CD5678"))).NotTo(HaveOccurred())

			plates, err := repo.Plates(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(plates).To(Equal([]string{"AB1234", "CD5678"}))
		})

		It("should make the newest link the current one", func() {
			Expect(repo.UpdateWithVehicle(1, newClient(1), newVehicle("CD5678"))).NotTo(HaveOccurred())

			// Updating again with CD5678 must resolve to the newest link and
			// update that vehicle rather than adding a third.
			updated := newVehicle("CD5678")
			updated.MileageKM = 1000
			Expect(repo.UpdateWithVehicle(1, newClient(1), updated)).NotTo(HaveOccurred())

			var linkCount int64
			Expect(db.Model(&SQLiteClientVehicle{}).Where("client_id = ?", 1).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(linkCount).To(Equal(int64(2)))

			var v SQLiteVehicle
			Expect(db.First(&v, "plate = ?", "CD5678").Error).NotTo(HaveOccurred())
			Expect(v.MileageKM).To(Equal(int64(1000)))
		})

		It("should reuse an existing vehicle when relinking to a known plate", func() {
			second := newClient(2)
			second.RUT = "9.876.543-3"
			Expect(repo.CreateWithVehicle(second, newVehicle("CD5678"))).NotTo(HaveOccurred())

			Expect(repo.UpdateWithVehicle(1, newClient(1), newVehicle("CD5678"))).NotTo(HaveOccurred())

			var vehicleCount int64
			Expect(db.Model(&SQLiteVehicle{}).Where("plate = ?", "CD5678").Count(&vehicleCount).Error).NotTo(HaveOccurred())
			Expect(vehicleCount).To(Equal(int64(1)))
		})

		It("should fail with not found for an unknown client", func() {
			err := repo.UpdateWithVehicle(99, newClient(99), newVehicle("ZZ9999"))
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())
			Expect(repo.UpdateWithVehicle(1, newClient(1), newVehicle("CD5678"))).NotTo(HaveOccurred())
		})

		It("should remove the client and every link, keeping the vehicles", func() {
			Expect(repo.Delete(1)).NotTo(HaveOccurred())

			var clientCount, linkCount, vehicleCount int64
			Expect(db.Model(&SQLiteClient{}).Count(&clientCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&SQLiteClientVehicle{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&SQLiteVehicle{}).Count(&vehicleCount).Error).NotTo(HaveOccurred())
			Expect(clientCount).To(Equal(int64(0)))
			Expect(linkCount).To(Equal(int64(0)))
			Expect(vehicleCount).To(Equal(int64(2)))
		})

		It("should fail with not found for an unknown client and change nothing", func() {
			err := repo.Delete(99)
			Expect(err).To(MatchError(internal.ErrClientNotFound))

			var linkCount int64
			Expect(db.Model(&SQLiteClientVehicle{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(linkCount).To(Equal(int64(2)))
		})

		It("should not touch links belonging to other clients", func() {
			second := newClient(2)
			second.RUT = "9.876.543-3"
			Expect(repo.CreateWithVehicle(second, newVehicle("AB1234"))).NotTo(HaveOccurred())

			Expect(repo.Delete(1)).NotTo(HaveOccurred())

			plates, err := repo.Plates(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(plates).To(Equal([]string{"AB1234"}))
		})
	})

	Describe("Available", func() {
		It("should list users with the client role not yet promoted", func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())

			users, err := repo.Available()
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
			Expect(users[0].ID).To(Equal(int64(2)))
			Expect(users[0].Email).To(Equal("juan@taller.cl"))
		})
	})

	Describe("GetAll", func() {
		It("should return one row per client-vehicle link", func() {
			Expect(repo.CreateWithVehicle(newClient(1), newVehicle("AB1234"))).NotTo(HaveOccurred())
			Expect(repo.UpdateWithVehicle(1, newClient(1), newVehicle("CD5678"))).NotTo(HaveOccurred())

			items, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].Name).To(Equal("Maria Perez"))
			Expect(*items[0].Plate).To(Equal("AB1234"))
			Expect(*items[1].Plate).To(Equal("CD5678"))
		})
	})

	Describe("Plates", func() {
		It("should fail with not found for an unknown client", func() {
			_, err := repo.Plates(42)
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})
	})
})
