package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEventData(t *testing.T) {
	original := &WorkLogEntryCreatedEvent{
		TenantID:  "tenant-1",
		MemberID:  "member-1",
		ProjectID: "project-1",
		Date:      "2026-03-10",
		Hours:     7.5,
		Note:      "api work",
	}

	payload, err := EncodeEventData(original)
	require.NoError(t, err)

	decoded, err := DecodeEventData(WorkLogEntryCreated, payload)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestDecodeEventDataUnknownType(t *testing.T) {
	_, err := DecodeEventData("V1_WORK_LOG_ENTRY_ARCHIVED", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownEventType)
}

func TestDecodeEventDataBadPayload(t *testing.T) {
	_, err := DecodeEventData(WorkLogEntryCreated, []byte(`{not json`))
	require.Error(t, err)
}
