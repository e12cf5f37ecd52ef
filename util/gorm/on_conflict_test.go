package gorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"

	gormutil "tgram/util/gorm"
)

type entry struct {
	Bot    string `gorm:"primaryKey"`
	Chat   int64  `gorm:"primaryKey;column:chat_ref"`
	Offset int64  `gorm:"not null"`
}

func TestUpsert(t *testing.T) {
	assert.Equal(t, []string{"bot", "chat_ref"}, gormutil.CollectTaggedColumns(new(entry), "primaryKey"))

	conflict := gormutil.Upsert(new(entry), "offset")
	assert.Equal(t, []clause.Column{{Name: "bot"}, {Name: "chat_ref"}}, conflict.Columns)
	assert.False(t, conflict.UpdateAll)
	assert.Equal(t, clause.AssignmentColumns([]string{"offset"}), conflict.DoUpdates)

	assert.True(t, gormutil.Upsert(entry{}).UpdateAll)
}
