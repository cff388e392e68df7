// Package mocks provides gomock-generated mock implementations of the
// billing interfaces. Generated using mockgen from github.com/golang/mock;
// regenerate with `go generate ./billing/...` after changing the
// interfaces.
package mocks

//go:generate mockgen -source=../billing.go -destination=mock_billing.go -package=mocks
