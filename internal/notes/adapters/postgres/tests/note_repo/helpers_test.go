package noterepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"noteshelf/pkg/logger"
)

func noteColumnNames() []string {
	return []string{
		"note_id", "title", "content",
		"created_at", "updated_at", "deleted_at",
		"created_by", "updated_by", "deleted_by",
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}
