package currency

import (
	"math/big"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestCurrencyTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyTestSuite))
}

type CurrencyTestSuite struct {
	suite.Suite
}

func (s *CurrencyTestSuite) TestParseWhole() {
	out, err := ParseUnits("5", Decimals)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "5000000000000000000", out.String())
}

func (s *CurrencyTestSuite) TestParseFraction() {
	out, err := ParseUnits("0.5", Decimals)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "500000000000000000", out.String())
}

func (s *CurrencyTestSuite) TestParseBareFraction() {
	out, err := ParseUnits(".25", Decimals)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "250000000000000000", out.String())
}

func (s *CurrencyTestSuite) TestParseFullPrecision() {
	out, err := ParseUnits("1.000000000000000001", Decimals)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "1000000000000000001", out.String())
}

func (s *CurrencyTestSuite) TestParseZero() {
	out, err := ParseUnits("0", Decimals)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, out.Sign())
}

func (s *CurrencyTestSuite) TestParseRejectsNegative() {
	_, err := ParseUnits("-1", Decimals)
	require.ErrorIs(s.T(), err, ErrMalformedAmount)
}

func (s *CurrencyTestSuite) TestParseRejectsEmpty() {
	_, err := ParseUnits("", Decimals)
	require.ErrorIs(s.T(), err, ErrMalformedAmount)

	_, err = ParseUnits("   ", Decimals)
	require.ErrorIs(s.T(), err, ErrMalformedAmount)

	_, err = ParseUnits(".", Decimals)
	require.ErrorIs(s.T(), err, ErrMalformedAmount)
}

func (s *CurrencyTestSuite) TestParseRejectsMalformed() {
	for _, amount := range []string{"1.2.3", "abc", "1e18", "1,5", "+5.0", "+5"} {
		_, err := ParseUnits(amount, Decimals)
		require.ErrorIs(s.T(), err, ErrMalformedAmount, amount)
	}
}

func (s *CurrencyTestSuite) TestParseRejectsTooPrecise() {
	_, err := ParseUnits("1.0000000000000000001", Decimals)
	require.ErrorIs(s.T(), err, ErrTooManyDecimals)
}

func (s *CurrencyTestSuite) TestFormatTrimsZeros() {
	amount, _ := new(big.Int).SetString("5000000000000000000", 10)
	require.Equal(s.T(), "5", FormatUnits(amount, Decimals))
}

func (s *CurrencyTestSuite) TestFormatSmallAmount() {
	require.Equal(s.T(), "0.000000000000000001", FormatUnits(big.NewInt(1), Decimals))
}

func (s *CurrencyTestSuite) TestFormatNil() {
	require.Equal(s.T(), "0", FormatUnits(nil, Decimals))
}

func (s *CurrencyTestSuite) TestRoundTrip() {
	for _, amount := range []string{"5", "0.5", "123.456", "0.000000000000000001"} {
		parsed, err := ParseUnits(amount, Decimals)
		require.NoError(s.T(), err)
		require.Equal(s.T(), amount, FormatUnits(parsed, Decimals))
	}
}

func (s *CurrencyTestSuite) TestDeadlineFromDuration() {
	now := time.Unix(1700000000, 0)
	require.Equal(s.T(), int64(1700000000+30*86400), DeadlineFromDuration(now, 30))
}
