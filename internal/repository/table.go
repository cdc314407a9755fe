package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/casing"
	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Version summarises a table's contents for change detection
type Version struct {
	Count     int64
	UpdatedAt string
}

// Table is the remote store for one entity type. It satisfies the write
// surface the optimistic mutators expect and the read surface the loader
// and change listener use.
type Table[T domain.Entity[T]] struct {
	db   *gorm.DB
	name string
}

// NewTable creates a table repository for T
func NewTable[T domain.Entity[T]](db *gorm.DB) *Table[T] {
	var zero T
	name := ""
	if tabler, ok := any(zero).(schema.Tabler); ok {
		name = tabler.TableName()
	}
	return &Table[T]{db: db, name: name}
}

// Name returns the underlying table name
func (t *Table[T]) Name() string {
	return t.name
}

// Insert creates the row and returns the identifier assigned to it
func (t *Table[T]) Insert(ctx context.Context, item T) (string, error) {
	id := uuid.New().String()
	row := item.WithID(id)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return id, nil
}

// Update applies a camelCase patch to the row with the given id. Composite
// values are stored as JSON.
func (t *Table[T]) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	values, err := toColumns(patch)
	if err != nil {
		return err
	}
	values["updated_at"] = time.Now().UTC()

	result := t.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row with the given id
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	result := t.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get returns the row with the given id
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := t.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return item, err
}

// List returns every row, newest first
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.list(ctx, t.db.WithContext(ctx))
}

// Version returns the row count and latest modification time
func (t *Table[T]) Version(ctx context.Context) (Version, error) {
	var row struct {
		Count     int64
		UpdatedAt sql.NullString
	}
	err := t.db.WithContext(ctx).
		Model(new(T)).
		Select("COUNT(*) AS count, MAX(COALESCE(updated_at, created_at)) AS updated_at").
		Scan(&row).Error
	if err != nil {
		return Version{}, err
	}
	return Version{Count: row.Count, UpdatedAt: row.UpdatedAt.String}, nil
}

func (t *Table[T]) list(ctx context.Context, query *gorm.DB) ([]T, error) {
	items := []T{}
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// IsNotFound reports whether err means the row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// toColumns converts a camelCase patch into snake_case column values
func toColumns(patch map[string]interface{}) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(patch)+1)
	for key, value := range patch {
		encoded, err := columnValue(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[casing.ToSnake(key)] = encoded
	}
	return values, nil
}

// columnValue marshals structs, slices and maps to JSON text; map updates
// bypass the serializer declared on the model fields.
func columnValue(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case time.Time, []byte:
		return v, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	}
	rv := reflect.ValueOf(value)
	kind := rv.Kind()
	if kind == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		kind = rv.Elem().Kind()
	}
	switch kind {
	case reflect.Struct, reflect.Slice, reflect.Map, reflect.Array:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
	return value, nil
}
