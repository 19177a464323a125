package internal_test

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal"
)

var _ = Describe("Config", func() {
	var cfg *internal.Config

	BeforeEach(func() {
		cfg = internal.DefaultConfig()
	})

	It("should default to the JSON file under the app directory", func() {
		Expect(cfg.Storage.Driver).To(Equal(internal.StorageDriverJSON))
		Expect(filepath.IsAbs(cfg.Storage.DataFile)).To(BeTrue())
		Expect(cfg.Storage.DataFile).To(HaveSuffix(filepath.Join(internal.AppDirName, internal.DataFileName)))
		Expect(cfg.Server.Addr()).To(Equal("127.0.0.1:8085"))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should require an absolute data file", func() {
		cfg.Storage.DataFile = "expenses.json"

		err := cfg.Validate()

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("absolute"))
	})

	It("should require a source for sql drivers", func() {
		cfg.Storage.Driver = internal.StorageDriverPostgres
		cfg.Storage.Source = " "

		Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))
	})

	It("should report every problem at once", func() {
		cfg.Storage.Driver = "mongo"
		cfg.Server.Port = 0
		cfg.Observability.Logging.Level = "loud"

		err := cfg.Validate()

		Expect(err).To(HaveOccurred())
		Expect(strings.Count(err.Error(), ";")).To(Equal(2))
		Expect(err.Error()).To(ContainSubstring("storage config"))
		Expect(err.Error()).To(ContainSubstring("server config"))
		Expect(err.Error()).To(ContainSubstring("logging config"))
	})
})

var _ = Describe("WithTimeout", func() {
	It("should fall back to the default timeout", func() {
		ctx, cancel := internal.WithTimeout(context.Background(), 0)
		defer cancel()

		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("~", internal.DefaultTimeout, time.Second))
	})
})
