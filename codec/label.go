package codec

import (
	"regexp"
	"sync"
)

var (
	slashLabel = regexp.MustCompile(`/\s*([a-zA-Z0-9_]+)\s*/`)
	arrayLabel = regexp.MustCompile(`([a-zA-Z0-9_]+)\s*\[`)

	ifaceMu     sync.Mutex
	ifaceLabels = map[string]*regexp.Regexp{}
)

// InferLabel guesses the name a source fragment refers to. It tries, in
// order: a name between slashes (/ name /), the first offset inside the
// status interface's brackets (gStatusLine[name), and the identifier in
// front of the first opening bracket. ok is false when nothing matches.
func InferLabel(text, iface string) (label string, ok bool) {
	if iface == "" {
		iface = DefaultInterface
	}
	for _, re := range []*regexp.Regexp{slashLabel, interfaceLabel(iface), arrayLabel} {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func interfaceLabel(iface string) *regexp.Regexp {
	ifaceMu.Lock()
	defer ifaceMu.Unlock()

	re, ok := ifaceLabels[iface]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(iface) + `\[\s*([a-zA-Z0-9_]+)`)
		ifaceLabels[iface] = re
	}
	return re
}
