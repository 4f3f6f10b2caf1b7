package types

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex stu_01HQ3Z4W6W5M9V3K8Y2C1B0A9D
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortID returns a short url-safe id
func GenerateShortID() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	return id
}

// GenerateInvoiceNumber returns a human readable invoice number
// ex INV-202403-dppUr5n
func GenerateInvoiceNumber(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = DefaultInvoiceNumberPrefix
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.UTC().Format("200601"), GenerateShortID())
}

const (
	DefaultInvoiceNumberPrefix = "INV"

	// Prefixes for all domains and entities

	UUID_PREFIX_STUDENT    = "stu"
	UUID_PREFIX_SUBJECT    = "sub"
	UUID_PREFIX_ENROLLMENT = "ss"
	UUID_PREFIX_ATTENDANCE = "att"
	UUID_PREFIX_PAYMENT    = "pay"
	UUID_PREFIX_INVOICE    = "inv"
)
