package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mmwale/expense-tracker/internal"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("AppError", func() {
	It("matches sentinels by code through wrapping", func() {
		err := fmt.Errorf("update: %w", internal.ErrExpenseNotFound.WithDetails("e1"))
		Expect(errors.Is(err, internal.ErrExpenseNotFound)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrTripNotFound)).To(BeFalse())
	})

	It("does not confuse the closed store with other internal errors", func() {
		Expect(errors.Is(internal.NewInternalError("x", nil), internal.ErrStoreClosed)).To(BeFalse())
	})

	It("copies instead of mutating sentinels", func() {
		cause := errors.New("disk full")
		wrapped := internal.ErrStoreClosed.WithCause(cause)
		Expect(internal.ErrStoreClosed.Cause).To(BeNil())
		Expect(errors.Is(wrapped, cause)).To(BeTrue())
		Expect(wrapped.Error()).To(Equal("store is closed: disk full"))
	})

	It("uses the first field message as the error text", func() {
		err := internal.NewValidationFieldError("amount", "amount must be a number", internal.ErrCodeInvalidAmount)
		Expect(err.Error()).To(Equal("amount must be a number"))
		Expect(err.GetDetailedMessage()).To(Equal("amount must be a number"))
	})

	It("marshals without the cause", func() {
		err := internal.NewStorageError("failed to write", internal.ErrCodeStorageWrite, errors.New("secret path"))
		data, jerr := json.Marshal(err)
		Expect(jerr).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"type":"STORAGE_FAILURE","code":"STORAGE_WRITE_FAILED","message":"failed to write"}`))
	})

	It("recognizes app errors", func() {
		appErr, ok := internal.IsAppError(internal.ErrTripNotFound)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))

		_, ok = internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Config", func() {
	var cfg internal.Config

	BeforeEach(func() {
		cfg = internal.Config{
			Storage:      internal.StorageConfig{Backend: internal.BackendFile, Path: "./data"},
			Notification: internal.NotificationConfig{DefaultDuration: 4 * time.Second},
			Logging:      internal.LoggingConfig{Level: "info", Format: "text"},
			Reference:    internal.ReferenceConfig{Teams: []string{"HR"}, Categories: []string{"Food"}},
			Report:       internal.ReportConfig{Locale: "en-US"},
		}
	})

	It("accepts a complete config", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("does not need a path for the memory backend", func() {
		cfg.Storage = internal.StorageConfig{Backend: internal.BackendMemory}
		Expect(cfg.Validate()).To(Succeed())
	})

	It("needs a path for persistent backends", func() {
		cfg.Storage.Path = ""
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("path")))
	})

	It("rejects unknown backends and log levels together", func() {
		cfg.Storage.Backend = "redis"
		cfg.Logging.Level = "verbose"
		err := cfg.Validate()
		Expect(err).To(MatchError(ContainSubstring("backend")))
		Expect(err).To(MatchError(ContainSubstring("level")))
	})

	It("wants a database file for sqlite", func() {
		cfg.Storage = internal.StorageConfig{Backend: internal.BackendSQLite, Path: "./data"}
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("sqlite path")))

		cfg.Storage.Path = "./data/tracker.db"
		Expect(cfg.Validate()).To(Succeed())

		cfg.Storage.Path = ":memory:"
		Expect(cfg.Validate()).To(Succeed())
	})

	It("rejects empty reference names and bad locales", func() {
		cfg.Reference.Teams = []string{"HR", ""}
		cfg.Report.Locale = "??"
		err := cfg.Validate()
		Expect(err).To(MatchError(ContainSubstring("teams")))
		Expect(err).To(MatchError(ContainSubstring("locale")))
	})
})
