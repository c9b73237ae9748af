package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBeforeCreateAssignsID(t *testing.T) {
	tx := &Transaction{}
	if err := tx.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if tx.ID == uuid.Nil {
		t.Fatal("ID still nil after BeforeCreate")
	}
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New()
	tx := &Transaction{ID: id}
	if err := tx.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if tx.ID != id {
		t.Fatalf("ID = %s, want %s", tx.ID, id)
	}
}

func TestIDColumnDefaultMatchesMigration(t *testing.T) {
	// The migration creates uuid-ossp and defaults id to
	// uuid_generate_v4(); the model tag must declare the same default so
	// AutoMigrate and the SQL files agree.
	field, ok := reflect.TypeOf(Transaction{}).FieldByName("ID")
	if !ok {
		t.Fatal("Transaction has no ID field")
	}
	if tag := field.Tag.Get("gorm"); !strings.Contains(tag, "default:uuid_generate_v4()") {
		t.Errorf("ID gorm tag = %q, want uuid_generate_v4() default", tag)
	}
}
