package selfupdate

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrChecksum = errors.New("checksum verification failed")

// checksumsFile is the manifest published next to every release archive.
const checksumsFile = "checksums.txt"

type archiveKind int

const (
	tarGz archiveKind = iota
	zipped
)

// asset names one release archive and the executable inside it.
type asset struct {
	name   string
	binary string
	kind   archiveKind
}

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetFor picks the archive built for goos/goarch. macOS ships a single
// universal archive.
func assetFor(goos, goarch string) (asset, error) {
	if goos == "darwin" {
		return asset{name: "quizgen_Darwin_all.tar.gz", binary: "quizgen", kind: tarGz}, nil
	}

	arch, ok := releaseArch[goarch]
	if !ok {
		return asset{}, fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return asset{name: "quizgen_Linux_" + arch + ".tar.gz", binary: "quizgen", kind: tarGz}, nil
	case "windows":
		return asset{name: "quizgen_Windows_" + arch + ".zip", binary: "quizgen.exe", kind: zipped}, nil
	}
	return asset{}, fmt.Errorf("unsupported operating system: %s", goos)
}

// expectedSum finds the hex digest listed for name in a sha256sum-style
// manifest ("<hex>  <file>" per line).
func expectedSum(manifest []byte, name string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == name {
			return fields[0], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", checksumsFile, err)
	}
	return "", fmt.Errorf("no checksum found for %s in %s", name, checksumsFile)
}

func checkSum(data []byte, want string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}
