package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/curator/internal/naming"
)

var (
	fixtureClients    = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli"}
	fixtureExtensions = []string{"csv", "xml", "json"}
)

// fixtureEpoch anchors the generated date ranges so repeated runs produce
// identical names.
var fixtureEpoch = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// WriteFixtures populates dir with count deterministic sample intake files,
// cycling through clients, date ranges and extensions. Every fifth name is
// deliberately malformed so a demonstration batch exercises the failure
// paths too. It returns the names written, in creation order.
func WriteFixtures(dir string, count int) ([]string, error) {
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := fixtureName(i)
		if err := os.WriteFile(filepath.Join(dir, name), fixtureBody(i, name), 0644); err != nil {
			return names, fmt.Errorf("write fixture %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func fixtureName(i int) string {
	client := fixtureClients[i%len(fixtureClients)]
	ext := fixtureExtensions[i%len(fixtureExtensions)]
	start := fixtureEpoch.AddDate(0, 0, 7*i)
	end := start.AddDate(0, 0, 3+i%9)

	switch {
	case i%10 == 4:
		// Inverted range: right shape, wrong order.
		return fmt.Sprintf("%s.%s.%s.%s", client,
			end.Format(naming.DateLayout), start.Format(naming.DateLayout), ext)
	case i%10 == 9:
		// Wrong shape and a disallowed extension.
		return fmt.Sprintf("scratch-%02d.tmp", i)
	default:
		return fmt.Sprintf("%s.%s.%s.%s", client,
			start.Format(naming.DateLayout), end.Format(naming.DateLayout), ext)
	}
}

func fixtureBody(i int, name string) []byte {
	line := fmt.Sprintf("sample client payload %02d (%s)\n", i, name)
	return []byte(strings.Repeat(line, 1+i%4))
}
