package postgres

import (
	"context"
	"encoding/json"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"faral-orders/internal/tablestore"
)

// tableDef is one logical table: its creation spec serialized as JSON so
// header text, styling and protection survive unchanged regardless of which
// schema variant produced them. One relation covers every partition ledger
// and the worklist; no DDL runs per table.
type tableDef struct {
	Name   string `gorm:"primary_key;type:varchar(128)"`
	Spec   string `gorm:"type:text"`
	Widths string `gorm:"type:text"`
}

func (tableDef) TableName() string { return "table_defs" }

// tableRow is one appended data row, cells as a JSON array. Seq preserves
// append order; rows are never updated or reordered once written, except
// for the whole-body rewrite the worklist uses.
type tableRow struct {
	ID    uint64 `gorm:"primary_key;auto_increment"`
	Table string `gorm:"column:table_name;index;type:varchar(128)"`
	Seq   int
	Cells string `gorm:"type:text"`
}

func (tableRow) TableName() string { return "table_rows" }

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the two backing relations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&tableDef{}, &tableRow{}).Error
}

func (s *Store) EnsureTable(_ context.Context, spec tablestore.TableSpec) error {
	if spec.Name == "" {
		return errors.New("table name is empty")
	}
	if len(spec.Columns) == 0 {
		return errors.Errorf("table %s: header has no columns", spec.Name)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&tableDef{}).Where("name = ?", spec.Name).Count(&count).Error; err != nil {
			return errors.Wrapf(err, "ensure %s", spec.Name)
		}
		if count > 0 {
			return nil
		}
		raw, err := json.Marshal(spec)
		if err != nil {
			return errors.Wrapf(err, "marshal spec %s", spec.Name)
		}
		widths := make([]int, len(spec.Columns))
		for i, c := range spec.Columns {
			widths[i] = c.Width
		}
		rawWidths, err := json.Marshal(widths)
		if err != nil {
			return errors.Wrapf(err, "marshal widths %s", spec.Name)
		}
		def := tableDef{Name: spec.Name, Spec: string(raw), Widths: string(rawWidths)}
		return errors.Wrapf(tx.Create(&def).Error, "create %s", spec.Name)
	})
}

func (s *Store) AppendRow(_ context.Context, name string, row []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		spec, err := loadSpec(tx, name)
		if err != nil {
			return err
		}
		if len(row) != len(spec.Columns) {
			return errors.Wrapf(tablestore.ErrColumnCount,
				"%s: got %d cells for %d columns", name, len(row), len(spec.Columns))
		}
		var next int
		if err := tx.Model(&tableRow{}).Where("table_name = ?", name).Count(&next).Error; err != nil {
			return errors.Wrapf(err, "count rows %s", name)
		}
		cells, err := json.Marshal(row)
		if err != nil {
			return errors.Wrapf(err, "marshal row %s", name)
		}
		r := tableRow{Table: name, Seq: next + 1, Cells: string(cells)}
		return errors.Wrapf(tx.Create(&r).Error, "append %s", name)
	})
}

func (s *Store) RowCount(_ context.Context, name string) (int, error) {
	if _, err := loadSpec(s.db, name); err != nil {
		return 0, err
	}
	var count int
	err := s.db.Model(&tableRow{}).Where("table_name = ?", name).Count(&count).Error
	return count, errors.Wrapf(err, "count rows %s", name)
}

func (s *Store) ReadBody(_ context.Context, name string) ([][]string, error) {
	if _, err := loadSpec(s.db, name); err != nil {
		return nil, err
	}
	var raw []tableRow
	if err := s.db.Where("table_name = ?", name).Order("seq").Find(&raw).Error; err != nil {
		return nil, errors.Wrapf(err, "read body %s", name)
	}
	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		var cells []string
		if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
			return nil, errors.Wrapf(err, "decode row %d of %s", r.Seq, name)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *Store) RewriteBody(_ context.Context, name string, rows [][]string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		spec, err := loadSpec(tx, name)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if len(row) != len(spec.Columns) {
				return errors.Wrapf(tablestore.ErrColumnCount,
					"%s: got %d cells for %d columns", name, len(row), len(spec.Columns))
			}
		}
		if err := tx.Where("table_name = ?", name).Delete(&tableRow{}).Error; err != nil {
			return errors.Wrapf(err, "clear body %s", name)
		}
		for i, row := range rows {
			cells, err := json.Marshal(row)
			if err != nil {
				return errors.Wrapf(err, "marshal row %s", name)
			}
			r := tableRow{Table: name, Seq: i + 1, Cells: string(cells)}
			if err := tx.Create(&r).Error; err != nil {
				return errors.Wrapf(err, "rewrite %s", name)
			}
		}
		return nil
	})
}

func (s *Store) FitColumns(ctx context.Context, name string) error {
	spec, err := loadSpec(s.db, name)
	if err != nil {
		return err
	}
	rows, err := s.ReadBody(ctx, name)
	if err != nil {
		return err
	}
	widths := make([]int, len(spec.Columns))
	for i, c := range spec.Columns {
		widths[i] = len(c.Title)
		for _, row := range rows {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}
	raw, err := json.Marshal(widths)
	if err != nil {
		return errors.Wrapf(err, "marshal widths %s", name)
	}
	err = s.db.Model(&tableDef{}).Where("name = ?", name).
		Update("widths", string(raw)).Error
	return errors.Wrapf(err, "fit columns %s", name)
}

func (s *Store) Tables(ctx context.Context) ([]tablestore.Table, error) {
	var defs []tableDef
	if err := s.db.Order("name").Find(&defs).Error; err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	out := make([]tablestore.Table, 0, len(defs))
	for _, def := range defs {
		var spec tablestore.TableSpec
		if err := json.Unmarshal([]byte(def.Spec), &spec); err != nil {
			return nil, errors.Wrapf(err, "decode spec %s", def.Name)
		}
		rows, err := s.ReadBody(ctx, def.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, tablestore.Table{Spec: spec, Rows: rows})
	}
	return out, nil
}

func loadSpec(db *gorm.DB, name string) (tablestore.TableSpec, error) {
	var def tableDef
	err := db.Where("name = ?", name).First(&def).Error
	if gorm.IsRecordNotFoundError(err) {
		return tablestore.TableSpec{}, errors.Wrap(tablestore.ErrTableNotFound, name)
	}
	if err != nil {
		return tablestore.TableSpec{}, errors.Wrapf(err, "load %s", name)
	}
	var spec tablestore.TableSpec
	if err := json.Unmarshal([]byte(def.Spec), &spec); err != nil {
		return tablestore.TableSpec{}, errors.Wrapf(err, "decode spec %s", name)
	}
	return spec, nil
}

var _ tablestore.Store = (*Store)(nil)
