package infra

import (
	"fmt"

	"cataldo/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then seeds the fixed geography tree.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	if err := SeedGeografia(db); err != nil {
		return nil, fmt.Errorf("seed geografia: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.PersonaTienda{},
		&model.Proveedor{},
		&model.Representante{},
		&model.Material{},
		&model.CostoTerceros{},
		&model.Producto{},
		&model.ProductoMaterial{},
		&model.Operacion{},
		&model.ProductoOperacion{},
		&model.HistorialOperacion{},
		&model.Encuesta{},
		&model.Correo{},
		&model.AuditLog{},
		&model.Pais{},
		&model.Region{},
		&model.Provincia{},
		&model.Comuna{},
	)
}

// SeedGeografia inserts the fixed Pais→Region→Provincia→Comuna tree once.
// Idempotent: a non-empty paises table is left untouched.
func SeedGeografia(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Pais{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type comunas []string
	type provincias map[string]comunas
	type regiones map[string]provincias

	chile := regiones{
		"Región Metropolitana de Santiago": provincias{
			"Santiago":   {"Santiago", "Providencia", "Ñuñoa", "La Florida", "Maipú", "Las Condes"},
			"Cordillera": {"Puente Alto", "Pirque", "San José de Maipo"},
			"Maipo":      {"San Bernardo", "Buin", "Paine", "Calera de Tango"},
		},
		"Región de Valparaíso": provincias{
			"Valparaíso": {"Valparaíso", "Viña del Mar", "Concón", "Quilpué", "Villa Alemana"},
			"Quillota":   {"Quillota", "La Calera", "Hijuelas"},
		},
		"Región del Biobío": provincias{
			"Concepción": {"Concepción", "Talcahuano", "San Pedro de la Paz", "Chiguayante"},
			"Biobío":     {"Los Ángeles", "Mulchén", "Nacimiento"},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		pais := model.Pais{Nombre: "Chile"}
		if err := tx.Create(&pais).Error; err != nil {
			return err
		}
		for nombreRegion, provs := range chile {
			region := model.Region{PaisID: pais.ID, Nombre: nombreRegion}
			if err := tx.Create(&region).Error; err != nil {
				return err
			}
			for nombreProv, coms := range provs {
				prov := model.Provincia{RegionID: region.ID, Nombre: nombreProv}
				if err := tx.Create(&prov).Error; err != nil {
					return err
				}
				for _, nombreComuna := range coms {
					if err := tx.Create(&model.Comuna{ProvinciaID: prov.ID, Nombre: nombreComuna}).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
