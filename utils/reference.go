package utils

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"gorm.io/gorm"
)

const referencePrefix = "RWE"
const referenceSuffixLength = 7
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand = mrand.New(mrand.NewSource(time.Now().UnixNano()))

// NewReferenceCode returns a candidate booking reference: the fixed prefix
// plus a random uppercase alphanumeric suffix. Uniqueness is not guaranteed
// here; use GenerateUniqueReference.
func NewReferenceCode() string {
	b := make([]byte, referenceSuffixLength)
	for i := range b {
		b[i] = referenceAlphabet[seededRand.Intn(len(referenceAlphabet))]
	}
	return referencePrefix + string(b)
}

// GenerateUniqueReference produces a reference code that no existing
// reservation carries. Collisions are vanishingly rare but checked anyway,
// inside the booking transaction so the insert cannot race the check.
func GenerateUniqueReference(tx *gorm.DB) (string, error) {
	for {
		code := NewReferenceCode()

		var reservation models.Reservation
		err := tx.Where("reference = ?", code).First(&reservation).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}

// NewReviewToken returns the single-use token for a review invitation.
func NewReviewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
