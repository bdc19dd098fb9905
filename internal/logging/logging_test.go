package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("loaded files", Field{Key: FieldCount, Value: 3})
	mock.Warn("skipped rows")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "loaded files", mock.Entries[0].Message)
	assert.Equal(t, FieldCount, mock.Entries[0].Fields[0].Key)
	assert.True(t, mock.HasEntry("WARN", "skipped rows"))
	assert.False(t, mock.HasEntry("ERROR", "skipped rows"))
}

func TestMockLoggerWithErrorAndFields(t *testing.T) {
	mock := &MockLogger{}
	boom := errors.New("boom")

	child := mock.WithError(boom).WithField(FieldCompany, "cgge").(*MockLogger)
	child.Error("load failed")

	require.Len(t, child.Entries, 1)
	assert.Equal(t, boom, child.Entries[0].Error)
	assert.Equal(t, FieldCompany, child.Entries[0].Fields[0].Key)
}

func TestNewLogrusAdapterLevels(t *testing.T) {
	adapter, ok := NewLogrusAdapter("debug", "json").(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())

	// Bad level falls back to info instead of failing.
	adapter, ok = NewLogrusAdapter("shouting", "text").(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestNewLogrusAdapterFromLoggerNil(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}

func TestSetAllLogLevels(t *testing.T) {
	SetAllLogLevels(logrus.WarnLevel)
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())

	SetAllLogLevels(logrus.InfoLevel)
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}
