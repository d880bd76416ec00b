package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
)

type rewriterRecord struct {
	AccountID     string
	TransactionID string
}

func TestRewriter_Rewrite(t *testing.T) {
	codec, err := NewAESPermanenceCodec(testPrivateKey)
	require.NoError(t, err)

	rewriter := NewRewriter[rewriterRecord](codec).
		WithField("accountId",
			func(r *rewriterRecord) string { return r.AccountID },
			func(r *rewriterRecord, v string) { r.AccountID = v },
		).
		WithField("transactionId",
			func(r *rewriterRecord) string { return r.TransactionID },
			func(r *rewriterRecord, v string) { r.TransactionID = v },
		)

	records := []*rewriterRecord{
		{AccountID: "acc-1", TransactionID: "txn-1"},
		{AccountID: "acc-2", TransactionID: "txn-2"},
	}

	err = rewriter.Rewrite(records, testScope())
	require.NoError(t, err)

	for i, record := range records {
		assert.NotEqual(t, "acc-1", record.AccountID, "record %d account id must be tokenized", i)
		assert.NotEqual(t, "txn-1", record.TransactionID)
	}

	// Every rewritten field must decode back to its original internal id.
	accountID, err := codec.DecodeID(records[0].AccountID, testScope())
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)

	transactionID, err := codec.DecodeID(records[1].TransactionID, testScope())
	require.NoError(t, err)
	assert.Equal(t, "txn-2", transactionID)
}

func TestRewriter_Rewrite_SameIDRewritesIdentically(t *testing.T) {
	codec, err := NewAESPermanenceCodec(testPrivateKey)
	require.NoError(t, err)

	rewriter := NewRewriter[rewriterRecord](codec).
		WithField("accountId",
			func(r *rewriterRecord) string { return r.AccountID },
			func(r *rewriterRecord, v string) { r.AccountID = v },
		)

	records := []*rewriterRecord{
		{AccountID: "acc-1"},
		{AccountID: "acc-1"},
	}

	require.NoError(t, rewriter.Rewrite(records, testScope()))
	assert.Equal(t, records[0].AccountID, records[1].AccountID)
}

func TestRewriter_Rewrite_FailsWholeBatchOnInvalidScope(t *testing.T) {
	codec, err := NewAESPermanenceCodec(testPrivateKey)
	require.NoError(t, err)

	rewriter := NewRewriter[rewriterRecord](codec).
		WithField("accountId",
			func(r *rewriterRecord) string { return r.AccountID },
			func(r *rewriterRecord, v string) { r.AccountID = v },
		)

	records := []*rewriterRecord{{AccountID: "acc-1"}}

	err = rewriter.Rewrite(records, idpermDomain.CallerScope{})
	assert.ErrorIs(t, err, idpermDomain.ErrInvalidScope)
	// A failed batch must not have leaked a half-written record.
	assert.Equal(t, "acc-1", records[0].AccountID)
}
