// Package relocate implements the copy-verify-delete protocol that moves a
// single intake file into the store.
package relocate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/naming"
	"github.com/harrison/curator/internal/store"
)

// VerifyMode selects how a copied destination is checked against its source
// before the source is deleted.
type VerifyMode string

const (
	// VerifySize compares source and destination byte counts. This is the
	// baseline integrity check and the default.
	VerifySize VerifyMode = "size"

	// VerifyDigest additionally compares SHA-256 digests of source and
	// destination. Opt-in for operators who want a stronger guarantee at
	// the cost of re-reading the copy.
	VerifyDigest VerifyMode = "digest"
)

// Relocator moves intake files into the store one at a time. Construct with
// New or NewWithVerify; the zero value has no verify mode and is unusable.
type Relocator struct {
	verify VerifyMode
}

// New returns a Relocator with size verification.
func New() *Relocator {
	return &Relocator{verify: VerifySize}
}

// NewWithVerify returns a Relocator with the given verification mode.
func NewWithVerify(mode VerifyMode) (*Relocator, error) {
	switch mode {
	case VerifySize, VerifyDigest:
		return &Relocator{verify: mode}, nil
	default:
		return nil, fmt.Errorf("unknown verify mode %q", mode)
	}
}

// Relocate moves one intake entry into the store:
//
//  1. check that both roots exist
//  2. validate the raw name; an invalid name touches nothing
//  3. create the destination directory chain lazily
//  4. copy the bytes to <storeRoot>/<DDMMYY>/<ext>/<client>, truncating
//     any previous file at that path (last write wins)
//  5. verify the copy against the source
//  6. only then delete the source
//
// A non-nil error means the fatal configuration case (a missing root) and
// obliges the caller to abort instead of continuing. Everything that can go
// wrong with the file itself comes back as a FileOutcome with Status
// FAILED and a reason from the models package; per-file failures never
// abort a batch.
func (r *Relocator) Relocate(intakeRoot, rawName, storeRoot string) (models.FileOutcome, error) {
	if err := store.CheckRoots(intakeRoot, storeRoot); err != nil {
		return models.FileOutcome{}, err
	}

	outcome := models.FileOutcome{Name: rawName, Status: models.StatusFailed}

	// Validation runs before any path is built from the raw name, so a
	// malformed name (including one smuggling path separators) causes zero
	// file system mutation.
	fn, err := naming.Parse(rawName)
	if err != nil {
		outcome.Reason = models.ReasonInvalidName
		outcome.Detail = err.Error()
		return outcome, nil
	}

	srcPath := filepath.Join(intakeRoot, rawName)
	destDir := store.ResolveDir(storeRoot, fn.StartToken(), fn.Extension)
	destPath := filepath.Join(destDir, fn.Client)

	src, err := os.Open(srcPath)
	if err != nil {
		outcome.Reason = models.ReasonCopyFailed
		outcome.Detail = fmt.Sprintf("open source: %v", err)
		return outcome, nil
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		outcome.Reason = models.ReasonCopyFailed
		outcome.Detail = fmt.Sprintf("create destination directory: %v", err)
		return outcome, nil
	}

	srcDigest, err := r.copyTo(src, destPath)
	if err != nil {
		// A failed copy can leave truncated bytes behind; drop them so the
		// store never holds an unverified file.
		os.Remove(destPath)
		outcome.Reason = models.ReasonCopyFailed
		outcome.Detail = err.Error()
		return outcome, nil
	}

	size, err := r.verifyCopy(srcPath, destPath, srcDigest)
	if err != nil {
		os.Remove(destPath)
		outcome.Reason = models.ReasonCopyFailed
		outcome.Detail = err.Error()
		return outcome, nil
	}

	// The destination is verified from here on. A failed source delete
	// leaves a duplicate behind, never lost data.
	if err := os.Remove(srcPath); err != nil {
		outcome.Reason = models.ReasonCleanupFailed
		outcome.Detail = fmt.Sprintf("remove source: %v", err)
		outcome.Destination = destPath
		outcome.Size = size
		return outcome, nil
	}

	outcome.Status = models.StatusRelocated
	outcome.Destination = destPath
	outcome.Size = size
	return outcome, nil
}

// copyTo copies src into destPath, truncating any existing file there. In
// digest mode the source digest is computed during the copy so the source
// is read only once.
func (r *Relocator) copyTo(src io.Reader, destPath string) (digest.Digest, error) {
	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	var out io.Writer = dst
	var digester digest.Digester
	if r.verify == VerifyDigest {
		digester = digest.Canonical.Digester()
		out = io.MultiWriter(dst, digester.Hash())
	}

	_, err = io.Copy(out, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("copy bytes: %w", err)
	}

	if digester == nil {
		return "", nil
	}
	return digester.Digest(), nil
}

// verifyCopy checks the copied destination against the source. Size
// equality is the baseline check in either mode; digest mode re-reads the
// destination and compares SHA-256 digests as well. It returns the verified
// byte count.
func (r *Relocator) verifyCopy(srcPath, destPath string, srcDigest digest.Digest) (int64, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	destInfo, err := os.Stat(destPath)
	if err != nil {
		return 0, fmt.Errorf("stat destination: %w", err)
	}
	if srcInfo.Size() != destInfo.Size() {
		return 0, fmt.Errorf("size mismatch: source %d bytes, destination %d bytes",
			srcInfo.Size(), destInfo.Size())
	}

	if r.verify == VerifyDigest {
		dst, err := os.Open(destPath)
		if err != nil {
			return 0, fmt.Errorf("reopen destination: %w", err)
		}
		destDigest, err := digest.FromReader(dst)
		dst.Close()
		if err != nil {
			return 0, fmt.Errorf("digest destination: %w", err)
		}
		if destDigest != srcDigest {
			return 0, fmt.Errorf("digest mismatch: source %s, destination %s", srcDigest, destDigest)
		}
	}

	return srcInfo.Size(), nil
}
