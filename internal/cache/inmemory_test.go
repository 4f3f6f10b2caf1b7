package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/logger"
)

func newTestCache(enabled bool) Cache {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	return NewInMemoryCache(cfg, logger.NewNopLogger())
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	key := GenerateKey(PrefixInvoiceDocument, "inv_1", "pdf")
	assert.Equal(t, "invoice_document:v1::inv_1:pdf", key)

	c.Set(ctx, key, []byte("%PDF"), 0)
	got, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, []byte("%PDF"), got)

	c.Delete(ctx, key)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestInMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	c.Set(ctx, GenerateKey(PrefixInvoiceDocument, "inv_1", "pdf"), 1, time.Minute)
	c.Set(ctx, GenerateKey(PrefixInvoiceDocument, "inv_1", "docx"), 2, time.Minute)
	c.Set(ctx, GenerateKey(PrefixDashboard, "summary"), 3, time.Minute)

	c.DeleteByPrefix(ctx, GenerateKey(PrefixInvoiceDocument, "inv_1"))

	_, ok := c.Get(ctx, GenerateKey(PrefixInvoiceDocument, "inv_1", "pdf"))
	assert.False(t, ok)
	_, ok = c.Get(ctx, GenerateKey(PrefixDashboard, "summary"))
	assert.True(t, ok)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(false)

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
