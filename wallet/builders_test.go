package wallet

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/prototype"
)

// marketClient has the quote/base pair the order tests trade: PRED with
// precision 4 against DX with precision 2.
func marketClient(t *testing.T) (*fakeClient, *Session) {
	client := newFakeClient()
	client.testAccount(testAccountName, testAccountID, testPassword)
	client.testAccount("bob", "1.2.101", testPassword)
	client.addAsset("DX", "1.3.0", 2)
	client.addAsset("PRED", "1.3.50", 4)
	client.addAsset("FEE", "1.3.1", 5)

	s, err := Login(context.Background(), client, testAccountName, testPassword, "FEE")
	assert.NoError(t, err)
	return client, s
}

func TestTransferOp(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.TransferOp(context.Background(), "bob", "DX", decimal.RequireFromString("1.23"), "")
	myassert.NoError(err)
	myassert.Equal(testAccountID, op.From)
	myassert.Equal("1.2.101", op.To)
	myassert.Equal(int64(123), op.Amount.Amount)
	myassert.Equal("1.3.0", op.Amount.AssetID)
	myassert.Equal("1.3.1", op.Fee.AssetID)
	myassert.Equal(int64(0), op.Fee.Amount)
	myassert.Nil(op.Memo)

	raw, err := prototype.WrapOperation(op)
	myassert.NoError(err)
	var tagged map[string]json.RawMessage
	myassert.NoError(json.Unmarshal(raw, &tagged))
	myassert.Contains(tagged, "transfer")
	myassert.NotContains(string(tagged["transfer"]), `"memo"`)
}

func TestTransferOpWithMemo(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.TransferOp(context.Background(), "bob", "DX", decimal.RequireFromString("5"), "rent")
	myassert.NoError(err)
	myassert.NotNil(op.Memo)
	myassert.NotEmpty(op.Memo.Nonce)
	myassert.NotEqual("rent", op.Memo.Message, "memo must be encrypted")
}

func TestTransferOpZeroAmount(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	// below one integer unit of a precision-2 asset
	_, err := s.TransferOp(context.Background(), "bob", "DX", decimal.RequireFromString("0.001"), "")
	myassert.Equal(prototype.ErrZeroAmount, err)
}

func TestBuyOpScaling(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	// buy 10 PRED (prec 4) at price 2 DX (prec 2):
	// cost 20 DX = 2000 integer units sold, 100000 integer units received
	op, err := s.BuyOp(context.Background(), "PRED", "DX", decimal.RequireFromString("10"), decimal.RequireFromString("2"), false, nil)
	myassert.NoError(err)
	myassert.Equal(testAccountID, op.Seller)
	myassert.Equal(int64(2000), op.AmountToSell.Amount)
	myassert.Equal("1.3.0", op.AmountToSell.AssetID)
	myassert.Equal(int64(100000), op.MinToReceive.Amount)
	myassert.Equal("1.3.50", op.MinToReceive.AssetID)
	myassert.False(op.FillOrKill)
}

func TestSellOpScaling(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	// sell 10 PRED at price 2 DX: 100000 units sold, 2000 units received
	op, err := s.SellOp(context.Background(), "PRED", "DX", decimal.RequireFromString("10"), decimal.RequireFromString("2"), true, nil)
	myassert.NoError(err)
	myassert.Equal(int64(100000), op.AmountToSell.Amount)
	myassert.Equal("1.3.50", op.AmountToSell.AssetID)
	myassert.Equal(int64(2000), op.MinToReceive.Amount)
	myassert.Equal("1.3.0", op.MinToReceive.AssetID)
	myassert.True(op.FillOrKill)
}

func TestBuyOpPriceFloorsOnce(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	// 3 PRED at 0.333 DX: cost 0.999 DX floors to 99 units, not 100
	op, err := s.BuyOp(context.Background(), "PRED", "DX", decimal.RequireFromString("3"), decimal.RequireFromString("0.333"), false, nil)
	myassert.NoError(err)
	myassert.Equal(int64(99), op.AmountToSell.Amount)
	myassert.Equal(int64(30000), op.MinToReceive.Amount)
}

func TestBuyOpZeroSides(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	// bought quantity is zero
	_, err := s.BuyOp(context.Background(), "PRED", "DX", decimal.RequireFromString("0.00001"), decimal.RequireFromString("2"), false, nil)
	myassert.Equal(prototype.ErrZeroAmount, err)

	// cost rounds to zero units of the base
	_, err = s.BuyOp(context.Background(), "PRED", "DX", decimal.RequireFromString("1"), decimal.RequireFromString("0.001"), false, nil)
	myassert.Equal(prototype.ErrZeroAmount, err)
}

func TestLimitOrderCreateOp(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	expiry := prototype.NewTimePointSec(time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC))
	op, err := s.LimitOrderCreateOp(context.Background(), "DX", decimal.RequireFromString("20"), "PRED", decimal.RequireFromString("10"), false, &expiry)
	myassert.NoError(err)
	myassert.Equal(int64(2000), op.AmountToSell.Amount)
	myassert.Equal(int64(100000), op.MinToReceive.Amount)
	myassert.Equal(expiry, op.Expiration)

	raw, err := json.Marshal(op)
	myassert.NoError(err)
	myassert.Contains(string(raw), `"expiration":"2027-01-02T03:04:05"`)
	myassert.Contains(string(raw), `"extensions":[]`)
}

func TestOrderDefaultExpiration(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.LimitOrderCreateOp(context.Background(), "DX", decimal.RequireFromString("20"), "PRED", decimal.RequireFromString("10"), false, nil)
	myassert.NoError(err)

	years := op.Expiration.Time.Sub(time.Now().UTC()).Hours() / 24 / 365
	myassert.InDelta(5.0, years, 0.02)
}

func TestCancelOrderOp(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.CancelOrderOp(context.Background(), "1.7.42")
	myassert.NoError(err)
	myassert.Equal("1.7.42", op.Order)
	myassert.Equal(testAccountID, op.FeePayingAccount)

	raw, err := json.Marshal(op)
	myassert.NoError(err)
	myassert.Contains(string(raw), `"fee_paying_account"`)
}

func TestAssetIssueOp(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.AssetIssueOp(context.Background(), "bob", "PRED", decimal.RequireFromString("2.5"), "")
	myassert.NoError(err)
	myassert.Equal(testAccountID, op.Issuer)
	myassert.Equal("1.2.101", op.IssueToAccount)
	myassert.Equal(int64(25000), op.AssetToIssue.Amount)

	raw, err := json.Marshal(op)
	myassert.NoError(err)
	myassert.Contains(string(raw), `"asset_to_issue"`)
	myassert.Contains(string(raw), `"issue_to_account"`)
}

func TestAssetReserveOp(t *testing.T) {
	myassert := assert.New(t)
	_, s := marketClient(t)

	op, err := s.AssetReserveOp(context.Background(), "PRED", decimal.RequireFromString("0.0001"))
	myassert.NoError(err)
	myassert.Equal(testAccountID, op.Payer)
	myassert.Equal(int64(1), op.AmountToReserve.Amount)

	_, err = s.AssetReserveOp(context.Background(), "PRED", decimal.Zero)
	myassert.Equal(prototype.ErrZeroAmount, err)
}

func TestBuyBroadcastReturnsCreatedOrder(t *testing.T) {
	myassert := assert.New(t)
	client, s := marketClient(t)

	client.nextResult = &chain.BroadcastResult{
		TxID:             "cafe",
		OperationResults: []chain.OperationResult{{Type: 1, Value: json.RawMessage(`"1.7.7"`)}},
	}
	client.objects["1.7.7"] = json.RawMessage(`{"id":"1.7.7","seller":"1.2.100"}`)

	obj, err := s.Buy(context.Background(), "PRED", "DX", decimal.RequireFromString("10"), decimal.RequireFromString("2"), false, nil)
	myassert.NoError(err)
	myassert.Contains(string(obj), `"1.7.7"`)
	myassert.Len(client.broadcasts, 1)
}
