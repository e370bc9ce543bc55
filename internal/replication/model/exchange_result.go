package model

import "github.com/blobstore/replicationworker/pkg/types"

// ExchangeMetadataResult is the per-replica outcome of one metadata
// exchange: exactly one of the two variants is meaningful, selected by OK.
type ExchangeMetadataResult struct {
	ok          bool
	missingKeys []BlobKey
	newToken    FindToken
	errorCode   types.ErrorCode
}

// OkExchangeResult builds the success variant: the keys this peer reports
// as worth fetching, plus the token to advance to once they are handled.
func OkExchangeResult(missingKeys []BlobKey, newToken FindToken) ExchangeMetadataResult {
	return ExchangeMetadataResult{ok: true, missingKeys: missingKeys, newToken: newToken}
}

// ErrExchangeResult builds the failure variant carrying the server- or
// locally-observed error code for this slot.
func ErrExchangeResult(code types.ErrorCode) ExchangeMetadataResult {
	return ExchangeMetadataResult{ok: false, errorCode: code}
}

func (r ExchangeMetadataResult) OK() bool                 { return r.ok }
func (r ExchangeMetadataResult) MissingKeys() []BlobKey    { return r.missingKeys }
func (r ExchangeMetadataResult) NewToken() FindToken       { return r.newToken }
func (r ExchangeMetadataResult) ErrorCode() types.ErrorCode { return r.errorCode }

// WithMissingKeys returns a copy of r with its missing-key set replaced,
// keeping the token already captured from the exchange; r itself is left
// unchanged.
func (r ExchangeMetadataResult) WithMissingKeys(keys []BlobKey) ExchangeMetadataResult {
	r.missingKeys = keys
	return r
}
