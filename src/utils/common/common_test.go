package common

import (
	"context"

	"github.com/fundflare/mirror/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestCommonTestSuite(t *testing.T) {
	suite.Run(t, new(CommonTestSuite))
}

type CommonTestSuite struct {
	suite.Suite
}

func (s *CommonTestSuite) TestConfigRoundTrip() {
	conf := config.Default()
	ctx := SetConfig(context.Background(), conf)

	got, err := GetConfig(ctx)
	require.NoError(s.T(), err)
	require.Same(s.T(), conf, got)
}

func (s *CommonTestSuite) TestConfigMissing() {
	_, err := GetConfig(context.Background())
	require.Error(s.T(), err)
}
