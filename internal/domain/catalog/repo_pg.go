package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PGLoader reads the reference tables created by the embedded migrations.
type PGLoader struct {
	conn queryable
}

func NewPGLoader(pool *pgxpool.Pool) *PGLoader {
	return &PGLoader{conn: pool}
}

func (l *PGLoader) Load(ctx context.Context) (*Catalog, error) {
	clinicians, err := l.clinicians(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := l.devices(ctx)
	if err != nil {
		return nil, err
	}
	diagnoses, err := l.diagnoses(ctx)
	if err != nil {
		return nil, err
	}
	asa, err := l.asaClasses(ctx)
	if err != nil {
		return nil, err
	}
	lateralities, err := l.lateralities(ctx)
	if err != nil {
		return nil, err
	}
	return New(clinicians, devices, diagnoses, asa, lateralities), nil
}

func (l *PGLoader) clinicians(ctx context.Context) ([]Clinician, error) {
	rows, err := l.conn.Query(ctx,
		`SELECT gmc, title, first_name, last_name, role
		 FROM reference_clinician ORDER BY sort_order, gmc`)
	if err != nil {
		return nil, fmt.Errorf("load clinicians: %w", err)
	}
	defer rows.Close()
	var out []Clinician
	for rows.Next() {
		var c Clinician
		if err := rows.Scan(&c.GMC, &c.Title, &c.FirstName, &c.LastName, &c.Role); err != nil {
			return nil, fmt.Errorf("scan clinician: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (l *PGLoader) devices(ctx context.Context) ([]Device, error) {
	rows, err := l.conn.Query(ctx,
		`SELECT device_code, udi, manufacturer, COALESCE(reference_number,''), COALESCE(serial_number,''),
		        COALESCE(lot_number,''), quantity, COALESCE(product_description,''), COALESCE(expiry_date,''),
		        COALESCE(type_description,''), COALESCE(gmdn_description,''), COALESCE(gmdn_code,''),
		        COALESCE(brand_name,'')
		 FROM reference_device ORDER BY sort_order, device_code`)
	if err != nil {
		return nil, fmt.Errorf("load devices: %w", err)
	}
	defer rows.Close()
	var out []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.DeviceCode, &d.UDI, &d.Manufacturer, &d.ReferenceNumber, &d.SerialNumber,
			&d.LotNumber, &d.Quantity, &d.ProductDescription, &d.ExpiryDate,
			&d.TypeDescription, &d.GMDNDescription, &d.GMDNCode, &d.BrandName); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (l *PGLoader) diagnoses(ctx context.Context) ([]Diagnosis, error) {
	rows, err := l.conn.Query(ctx, `SELECT code, display FROM reference_icd10 ORDER BY sort_order, code`)
	if err != nil {
		return nil, fmt.Errorf("load icd10: %w", err)
	}
	defer rows.Close()
	var out []Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.Code, &d.Display); err != nil {
			return nil, fmt.Errorf("scan icd10: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (l *PGLoader) asaClasses(ctx context.Context) ([]ASAClass, error) {
	rows, err := l.conn.Query(ctx, `SELECT code, label, description FROM reference_asa ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("load asa: %w", err)
	}
	defer rows.Close()
	var out []ASAClass
	for rows.Next() {
		var a ASAClass
		if err := rows.Scan(&a.Code, &a.Label, &a.Description); err != nil {
			return nil, fmt.Errorf("scan asa: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (l *PGLoader) lateralities(ctx context.Context) ([]Laterality, error) {
	rows, err := l.conn.Query(ctx, `SELECT code, label FROM reference_laterality ORDER BY sort_order, code`)
	if err != nil {
		return nil, fmt.Errorf("load laterality: %w", err)
	}
	defer rows.Close()
	var out []Laterality
	for rows.Next() {
		var lt Laterality
		if err := rows.Scan(&lt.Code, &lt.Label); err != nil {
			return nil, fmt.Errorf("scan laterality: %w", err)
		}
		out = append(out, lt)
	}
	return out, rows.Err()
}

// Import upserts every entry of cat into the reference tables, keeping
// catalog order in sort_order.
func (l *PGLoader) Import(ctx context.Context, cat *Catalog) error {
	b := &pgx.Batch{}
	for i, c := range cat.clinicians {
		b.Queue(`INSERT INTO reference_clinician (gmc, title, first_name, last_name, role, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (gmc) DO UPDATE SET title = EXCLUDED.title, first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name, role = EXCLUDED.role, sort_order = EXCLUDED.sort_order`,
			c.GMC, c.Title, c.FirstName, c.LastName, c.Role, i)
	}
	for i, d := range cat.devices {
		b.Queue(`INSERT INTO reference_device (device_code, udi, manufacturer, reference_number, serial_number,
				lot_number, quantity, product_description, expiry_date, type_description, gmdn_description,
				gmdn_code, brand_name, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (device_code) DO UPDATE SET udi = EXCLUDED.udi, manufacturer = EXCLUDED.manufacturer,
				reference_number = EXCLUDED.reference_number, serial_number = EXCLUDED.serial_number,
				lot_number = EXCLUDED.lot_number, quantity = EXCLUDED.quantity,
				product_description = EXCLUDED.product_description, expiry_date = EXCLUDED.expiry_date,
				type_description = EXCLUDED.type_description, gmdn_description = EXCLUDED.gmdn_description,
				gmdn_code = EXCLUDED.gmdn_code, brand_name = EXCLUDED.brand_name, sort_order = EXCLUDED.sort_order`,
			d.DeviceCode, d.UDI, d.Manufacturer, d.ReferenceNumber, d.SerialNumber, d.LotNumber, d.Quantity,
			d.ProductDescription, d.ExpiryDate, d.TypeDescription, d.GMDNDescription, d.GMDNCode, d.BrandName, i)
	}
	for i, d := range cat.diagnoses {
		b.Queue(`INSERT INTO reference_icd10 (code, display, sort_order) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET display = EXCLUDED.display, sort_order = EXCLUDED.sort_order`,
			d.Code, d.Display, i)
	}
	for _, a := range cat.asaClasses {
		b.Queue(`INSERT INTO reference_asa (code, label, description) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label, description = EXCLUDED.description`,
			a.Code, a.Label, a.Description)
	}
	for i, lt := range cat.lateralities {
		b.Queue(`INSERT INTO reference_laterality (code, label, sort_order) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label, sort_order = EXCLUDED.sort_order`,
			lt.Code, lt.Label, i)
	}

	br := l.conn.SendBatch(ctx, b)
	defer br.Close()
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("import catalog row %d: %w", i, err)
		}
	}
	return br.Close()
}
