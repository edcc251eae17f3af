package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetObjectName(t *testing.T) {
	svc := &MinIOService{}

	name := svc.AssetObjectName("sheet-1", "solutions.pdf")
	assert.True(t, strings.HasPrefix(name, "sheets/sheet-1/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	// Repeated uploads of the same filename get distinct keys.
	other := svc.AssetObjectName("sheet-1", "solutions.pdf")
	assert.NotEqual(t, name, other)
}
