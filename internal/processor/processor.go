// Package processor runs the sealing transforms over a set of files,
// fanning out across workers and writing each output atomically.
package processor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/encryption4all/goseal/internal/config"
	"github.com/encryption4all/goseal/internal/fileutil"
	"github.com/encryption4all/goseal/pkg/seal"
)

// keyLength is the raw length of the combined key: cipher key || MAC key.
const keyLength = 2 * seal.KeySize

// Processor seals or unseals the files named in the configuration.
type Processor struct {
	cfg *config.Config

	cipherKey []byte
	macKey    []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// New creates a Processor, reading and splitting the combined key.
func New(cfg *config.Config) (*Processor, error) {
	hexKey := cfg.Key

	if cfg.KeyFile != "" {
		data, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		hexKey = strings.TrimSpace(string(data))
	}

	raw, err := key.FromHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if len(raw) != keyLength {
		return nil, fmt.Errorf("key must be %d bytes (%d hex characters), got %d bytes",
			keyLength, 2*keyLength, len(raw))
	}

	return &Processor{
		cfg:       cfg,
		cipherKey: raw[:seal.KeySize],
		macKey:    raw[seal.KeySize:],
		results:   make(chan Result, len(cfg.Files)),
	}, nil
}

// Run processes all configured files concurrently. It returns the number of
// successfully processed files, the number of failures and the total output
// size.
func (p *Processor) Run() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	summaries := p.report()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- failure(file, err)

				return err
			}

			p.results <- success(file, outPath, size)

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	s := <-summaries

	if err != nil {
		return s.processed, s.errored, s.totalSize, fmt.Errorf("processing files: %w", err)
	}

	return s.processed, s.errored, s.totalSize, nil
}

// report drains the results channel, printing progress and deleting sources
// when configured. The aggregated summary is delivered once the channel
// closes.
func (p *Processor) report() <-chan summary {
	summaries := make(chan summary, 1)

	go func() {
		var s summary

		for result := range p.results {
			if result.Error != nil {
				s.errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			s.processed++
			s.totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if p.cfg.Delete {
				p.deleteSource(result.Input)
			}
		}

		summaries <- s
	}()

	return summaries
}

// deleteSource removes a successfully processed input file.
func (p *Processor) deleteSource(path string) {
	if err := os.Remove(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", path, err)

		return
	}

	if !p.cfg.Quiet {
		fmt.Printf("Deleted %q\n", path) //nolint:forbidigo
	}
}

// processFile seals or unseals a single file through a temporary file that
// is renamed into place on success.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	aw, err := fileutil.Begin(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer aw.Abort()

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	const ownerReadWrite = os.FileMode(0o600)

	executable := aw.IsExec

	if p.cfg.Unseal {
		executable, err = p.unseal(inFile, aw.File)
		if err != nil {
			return 0, fmt.Errorf("unsealing file: %w", err)
		}
	} else if err := p.seal(inFile, aw.File, executable); err != nil {
		return 0, fmt.Errorf("sealing file: %w", err)
	}

	perm := ownerReadWrite
	if executable {
		perm |= 0o111
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	size, err = aw.Commit(outPath, perm, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// seal streams plaintext from reader into a sealing transform. The envelope
// carries a fresh random nonce and doubles as the authenticated header.
func (p *Processor) seal(reader io.Reader, writer io.Writer, executable bool) error {
	iv := make([]byte, seal.IVSize)
	copy(iv, random.GetRandomBytes(seal.NonceSize))

	envelope := newEnvelope(iv, executable)

	sealer, err := seal.NewSealer(writer, seal.Config{
		CipherKey: p.cipherKey,
		MACKey:    p.macKey,
		IV:        iv,
		Header:    envelope,
		ChunkSize: p.cfg.ChunkSize,
	})
	if err != nil {
		return fmt.Errorf("creating sealer: %w", err)
	}

	if err := pump(sealer, reader); err != nil {
		return err
	}

	if err := sealer.Close(); err != nil {
		return fmt.Errorf("closing sealer: %w", err)
	}

	return nil
}

// unseal reads the envelope, then streams the ciphertext through an
// unsealing transform. The verification result surfaces from Close; on
// failure the temporary output is discarded, so provisional plaintext never
// reaches the destination path.
func (p *Processor) unseal(reader io.Reader, writer io.Writer) (bool, error) {
	envelope := make([]byte, envelopeSize)
	if _, err := io.ReadFull(reader, envelope); err != nil {
		return false, fmt.Errorf("%w: reading header: %w", ErrEnvelope, err)
	}

	iv, executable, err := parseEnvelope(envelope)
	if err != nil {
		return false, err
	}

	unsealer, err := seal.NewUnsealer(writer, seal.Config{
		CipherKey: p.cipherKey,
		MACKey:    p.macKey,
		IV:        iv,
		Header:    envelope,
		ChunkSize: p.cfg.ChunkSize,
	})
	if err != nil {
		return false, fmt.Errorf("creating unsealer: %w", err)
	}

	if err := pump(unsealer, reader); err != nil {
		return false, err
	}

	if err := unsealer.Close(); err != nil {
		if errors.Is(err, seal.ErrAuthentication) || errors.Is(err, seal.ErrMalformed) {
			return false, err
		}

		return false, fmt.Errorf("closing unsealer: %w", err)
	}

	return executable, nil
}

// pump copies reader into the transform using a pooled scratch buffer.
func pump(dst io.Writer, src io.Reader) error {
	buf, ok := copyBuffers.Get().(*[]byte)
	if !ok {
		return errors.New("invalid buffer type from pool")
	}

	defer copyBuffers.Put(buf)

	if _, err := io.CopyBuffer(dst, src, *buf); err != nil {
		return fmt.Errorf("streaming data: %w", err)
	}

	return nil
}

// outputPath generates the output file path based on the input filename and
// the configured suffixes.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.SealSuffix

	if p.cfg.Unseal {
		filename = strings.TrimSuffix(filename, p.cfg.SealSuffix)
		ext = p.cfg.UnsealSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
