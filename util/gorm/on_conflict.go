package gorm

import (
	"reflect"
	"strings"

	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Upsert builds an ON CONFLICT clause on the primary key columns of entity.
// The listed columns are overwritten on conflict, or all columns if none are listed.
func Upsert(entity interface{}, columns ...string) clause.OnConflict {
	keys := CollectTaggedColumns(entity, "primaryKey")
	conflict := clause.OnConflict{Columns: make([]clause.Column, len(keys))}
	for i, key := range keys {
		conflict.Columns[i] = clause.Column{Name: key}
	}

	if len(columns) == 0 {
		conflict.UpdateAll = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(columns)
	}

	return conflict
}

var namingStrategy schema.NamingStrategy

// CollectTaggedColumns returns the column names of entity fields having the gorm tag setting.
func CollectTaggedColumns(entity interface{}, setting string) []string {
	setting = strings.ToUpper(setting)
	entityType, ok := entity.(reflect.Type)
	if !ok {
		entityType = reflect.TypeOf(entity)
	}

	switch entityType.Kind() {
	case reflect.Slice, reflect.Array, reflect.Ptr:
		entityType = entityType.Elem()
	}

	columns := make([]string, 0)
	for i := 0; i < entityType.NumField(); i++ {
		field := entityType.Field(i)
		tag, ok := field.Tag.Lookup("gorm")
		if !ok {
			continue
		}

		settings := schema.ParseTagSetting(tag, ";")
		if _, ok := settings["EMBEDDED"]; ok {
			columns = append(columns, CollectTaggedColumns(field.Type, setting)...)
			continue
		}

		if _, ok := settings[setting]; !ok {
			continue
		}

		column, ok := settings["COLUMN"]
		if !ok {
			column = namingStrategy.ColumnName("", field.Name)
		}

		columns = append(columns, column)
	}

	return columns
}
