package roots_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRoots(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Roots Suite")
}
