package chain

import (
	"errors"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

type ErrorsTestSuite struct {
	suite.Suite
}

func (s *ErrorsTestSuite) TestNil() {
	require.NoError(s.T(), classifySubmission(nil))
}

func (s *ErrorsTestSuite) TestClefDenial() {
	err := classifySubmission(errors.New("Request denied"))
	require.ErrorIs(s.T(), err, ErrUserRejected)
}

func (s *ErrorsTestSuite) TestProviderRejection() {
	err := classifySubmission(errors.New("User rejected the request (4001)"))
	require.ErrorIs(s.T(), err, ErrUserRejected)
}

func (s *ErrorsTestSuite) TestOtherSubmissionFailure() {
	err := classifySubmission(errors.New("insufficient funds for gas * price + value"))
	require.ErrorIs(s.T(), err, ErrSubmission)
	require.NotErrorIs(s.T(), err, ErrUserRejected)
}

func (s *ErrorsTestSuite) TestOriginalMessagePreserved() {
	err := classifySubmission(errors.New("nonce too low"))
	require.Contains(s.T(), err.Error(), "nonce too low")
}
