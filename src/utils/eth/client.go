package eth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

type (
	RawABIResponse struct {
		Status  *string `json:"status"`
		Message *string `json:"message"`
		Result  *string `json:"result"`
	}
)

func GetEthClient(ctx context.Context, log *logrus.Entry, rpcUrl string) (client *ethclient.Client, err error) {
	client, err = ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		log.WithError(err).Error("Cannot get ETH client")
		return
	}

	return
}

// GetContractRawABI downloads the verified ABI from a block explorer API
func GetContractRawABI(apiUrl, address, apiKey string) (rawABIResponse *RawABIResponse, err error) {
	client := resty.New()
	rawABIResponse = &RawABIResponse{}
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"module":  "contract",
			"action":  "getabi",
			"address": address,
			"apikey":  apiKey,
		}).
		SetResult(rawABIResponse).
		Get(apiUrl)

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get contract raw abi was not successful: %s", resp)
	}

	if rawABIResponse.Status == nil || *rawABIResponse.Status != "1" {
		return nil, fmt.Errorf("get contract raw abi failed: %s", resp)
	}

	return rawABIResponse, nil
}

func GetContractABI(apiUrl, contractAddress, apiKey string) (*abi.ABI, error) {
	rawABIResponse, err := GetContractRawABI(apiUrl, contractAddress, apiKey)
	if err != nil {
		return nil, err
	}

	contractABI, err := abi.JSON(strings.NewReader(*rawABIResponse.Result))
	if err != nil {
		return nil, err
	}
	return &contractABI, nil
}

func GetContractABIFromFile(fileName string) (*abi.ABI, error) {
	byteValue, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	contractABI, err := abi.JSON(strings.NewReader(string(byteValue)))
	if err != nil {
		return nil, err
	}
	return &contractABI, nil
}
