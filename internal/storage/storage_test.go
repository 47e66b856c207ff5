package storage_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/mmwale/expense-tracker/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

type record struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags,omitempty"`
	Count int      `json:"count"`
}

// brokenBackend fails every call.
type brokenBackend struct{}

func (brokenBackend) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk on fire") }
func (brokenBackend) Set(string, []byte) error         { return errors.New("disk on fire") }
func (brokenBackend) Close() error                     { return nil }

var _ = Describe("MemoryBackend", func() {
	It("reports missing keys without an error", func() {
		b := storage.NewMemoryBackend()
		_, ok, err := b.Get("nothing")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("copies values in and out", func() {
		b := storage.NewMemoryBackend()
		in := []byte("abc")
		Expect(b.Set("k", in)).To(Succeed())
		in[0] = 'z'

		out, ok, err := b.Get("k")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(string(out)).To(Equal("abc"))
	})

	It("fails after Close", func() {
		b := storage.NewMemoryBackend()
		Expect(b.Close()).To(Succeed())
		Expect(b.Set("k", nil)).To(MatchError(storage.ErrBackendClosed))
		_, _, err := b.Get("k")
		Expect(err).To(MatchError(storage.ErrBackendClosed))
	})
})

var _ = Describe("FileBackend", func() {
	var (
		fs      afero.Fs
		backend *storage.FileBackend
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		var err error
		backend, err = storage.NewFileBackend(fs, "/data/tracker")
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates the storage directory", func() {
		ok, err := afero.DirExists(fs, "/data/tracker")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("writes one json file per key", func() {
		Expect(backend.Set(storage.KeyExpenses, []byte(`[]`))).To(Succeed())

		data, err := afero.ReadFile(fs, "/data/tracker/expenses.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("[]"))

		exists, _ := afero.Exists(fs, "/data/tracker/expenses.json.tmp")
		Expect(exists).To(BeFalse())
	})

	It("reads back what it wrote and overwrites", func() {
		Expect(backend.Set("trips", []byte(`[1]`))).To(Succeed())
		Expect(backend.Set("trips", []byte(`[2]`))).To(Succeed())

		data, ok, err := backend.Get("trips")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(string(data)).To(Equal("[2]"))
	})

	It("reports a missing key as absent", func() {
		_, ok, err := backend.Get("trips")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	DescribeTable("rejects keys that would escape the directory",
		func(key string) {
			Expect(backend.Set(key, []byte("x"))).NotTo(Succeed())
			_, _, err := backend.Get(key)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("parent path", "../etc"),
		Entry("nested path", "a/b"),
		Entry("hidden file", ".hidden"),
	)
})

var _ = Describe("Adapter", func() {
	var (
		backend *storage.MemoryBackend
		logs    *bytes.Buffer
		adapter *storage.Adapter
	)

	BeforeEach(func() {
		backend = storage.NewMemoryBackend()
		logs = &bytes.Buffer{}
		adapter = storage.NewAdapter(backend, slog.New(slog.NewTextHandler(logs, nil)))
	})

	It("round-trips a collection", func() {
		in := []record{{ID: "a", Tags: []string{"x", "y"}, Count: 2}, {ID: "b"}}
		adapter.Save("records", in)

		out := storage.Load(adapter, "records", []record{})
		Expect(out).To(Equal(in))
	})

	It("returns the default for a missing key", func() {
		def := []record{{ID: "default"}}
		Expect(storage.Load(adapter, "records", def)).To(Equal(def))
	})

	It("returns the default and logs when the stored text is malformed", func() {
		Expect(backend.Set("records", []byte(`[{"id":`))).To(Succeed())

		Expect(storage.Load(adapter, "records", []record{})).To(BeEmpty())
		Expect(logs.String()).To(ContainSubstring("STORAGE_DECODE_FAILED"))
	})

	It("logs failed writes instead of returning them", func() {
		a := storage.NewAdapter(brokenBackend{}, slog.New(slog.NewTextHandler(logs, nil)))
		Expect(func() { a.Save("records", []record{{ID: "a"}}) }).NotTo(Panic())
		Expect(logs.String()).To(ContainSubstring("STORAGE_WRITE_FAILED"))
	})

	It("logs failed reads and falls back", func() {
		a := storage.NewAdapter(brokenBackend{}, slog.New(slog.NewTextHandler(logs, nil)))
		Expect(storage.Load(a, "records", []record{{ID: "fallback"}})).To(HaveLen(1))
		Expect(logs.String()).To(ContainSubstring("STORAGE_READ_FAILED"))
	})

	It("logs values that cannot be encoded and leaves storage alone", func() {
		adapter.Save("records", []record{{ID: "kept"}})
		adapter.Save("records", map[string]any{"bad": make(chan int)})

		Expect(logs.String()).To(ContainSubstring("STORAGE_ENCODE_FAILED"))
		Expect(storage.Load(adapter, "records", []record{})).To(Equal([]record{{ID: "kept"}}))
	})
})
