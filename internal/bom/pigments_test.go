package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phenrril/cablemrp/internal/domain"
)

func TestCheckPigmentTable(t *testing.T) {
	assert.NoError(t, CheckPigmentTable(PigmentBuckets))
	assert.Len(t, PigmentBuckets, 9)

	missing := PigmentBuckets[:len(PigmentBuckets)-1]
	assert.ErrorContains(t, CheckPigmentTable(missing), string(domain.PigPVCBrown))

	dup := append([]PigmentBucket{}, PigmentBuckets...)
	dup = append(dup, PigmentBucket{Color: "pink", Sources: []domain.MaterialKind{domain.PigUVBlack}})
	assert.Error(t, CheckPigmentTable(dup))

	renamed := append([]PigmentBucket{}, PigmentBuckets...)
	renamed[0] = PigmentBucket{Color: domain.ColorBlack, Sources: []domain.MaterialKind{"pig_uv_blk", domain.PigPVCBlack}}
	assert.Error(t, CheckPigmentTable(renamed))

	assert.Error(t, CheckPigmentTable([]PigmentBucket{{Color: domain.ColorBlack}}))
}

func TestPigmentBuckets_EachColorHasOneOrTwoSources(t *testing.T) {
	for _, b := range PigmentBuckets {
		assert.True(t, len(b.Sources) >= 1 && len(b.Sources) <= 2, "color %s", b.Color)
	}
}
