package utils

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"

	"bitbucket.org/alrahmateam/medaid_backend/config"
)

// DefaultPhoneRegion is the region numbers are parsed against when the
// stored value has no country prefix.
//
// Set via env:
// - PHONE_REGION=LB
func DefaultPhoneRegion() string {
	region := strings.ToUpper(strings.TrimSpace(os.Getenv("PHONE_REGION")))
	if region == "" {
		return "LB"
	}
	return region
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// ParseAmount parses a stored money/quantity cell for arithmetic. Sheet
// cells carry thousands separators and stray currency tokens ("$ 1,250",
// "LBP 300,000"); anything unparsable after cleanup counts as zero so
// aggregation never fails on one bad cell.
func ParseAmount(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	var cleaned strings.Builder
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			cleaned.WriteRune(r)
		case r == ',':
			// thousands separator
		}
	}
	dec, err := ParseDecimal(cleaned.String())
	if err != nil {
		return decimal.Zero
	}
	return dec
}

func GenerateUniqueFilename() string {

	timestamp := time.Now().UnixNano()

	random := rand.Intn(1000)

	uniqueFilename := fmt.Sprintf("%d_%d", timestamp, random)

	return uniqueFilename
}

// EntityLock serializes scan+write against one entity's sheet across
// replicas. The Redis lock is a best-effort optimization: reliability
// must not depend on Redis, the in-process mutex in the gateway is the
// floor. With no locker configured the returned release is a no-op.
func EntityLock(ctx context.Context, entity string, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}
	lockKey := fmt.Sprintf("mutation:%s", entity)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock for entity", entity, err)
		return nil, errors.New("could not obtain lock for entity")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock for entity", entity, err)
		return nil, err
	}
	return func() { _ = lock.Release(ctx) }, nil
}
