package thermo_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestThermo(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Thermo Suite")
}
