package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func validate(v interface{}) error {
	return binding.Validator.ValidateStruct(v)
}

func TestRecordBalanceRequest_Valid(t *testing.T) {
	req := &RecordBalanceRequest{
		SourceKey: "cold-wallet.1",
		Currency:  "BTC",
		Balance:   "12500000000",
		Label:     "Primary cold storage",
	}
	assert.NoError(t, validate(req))
}

func TestRecordBalanceRequest_BalanceMustBeIntString(t *testing.T) {
	for _, bad := range []string{"-1", "1.5", "1e9", "0x10", "", " 100"} {
		req := &RecordBalanceRequest{
			SourceKey: "cold-1",
			Currency:  "BTC",
			Balance:   bad,
		}
		assert.Error(t, validate(req), "balance %q should be rejected", bad)
	}
}

func TestRecordBalanceRequest_SourceKeyCharset(t *testing.T) {
	for _, bad := range []string{"cold wallet", "cold;1", "<script>", ""} {
		req := &RecordBalanceRequest{
			SourceKey: bad,
			Currency:  "BTC",
			Balance:   "100",
		}
		assert.Error(t, validate(req), "source key %q should be rejected", bad)
	}
}

func TestRecordBalanceRequest_CurrencyUppercase(t *testing.T) {
	req := &RecordBalanceRequest{
		SourceKey: "cold-1",
		Currency:  "btc",
		Balance:   "100",
	}
	assert.Error(t, validate(req))
}

func TestExecuteSettlementRequest(t *testing.T) {
	assert.NoError(t, validate(&ExecuteSettlementRequest{Currency: "USDT"}))
	assert.Error(t, validate(&ExecuteSettlementRequest{Currency: ""}))
	assert.Error(t, validate(&ExecuteSettlementRequest{Currency: "B"}))
}

func TestSanitizeStruct(t *testing.T) {
	req := &RecordBalanceRequest{
		SourceKey: "  cold-1  ",
		Currency:  "BTC",
		Balance:   "100",
		Label:     `<b>vault</b>`,
	}
	SanitizeStruct(req)
	assert.Equal(t, "cold-1", req.SourceKey)
	assert.Equal(t, "&lt;b&gt;vault&lt;/b&gt;", req.Label)
}
