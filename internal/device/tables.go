package device

//
// Ordered classification tables
//

import (
	"regexp"
	"strings"
)

// browserRule matches a browser by descriptor substring. Rules are
// evaluated in table order and the first match wins.
type browserRule struct {
	// name is the browser name to report.
	name string

	// anyOf lists the substrings identifying this browser; matching
	// any of them is enough.
	anyOf []string

	// version extracts the version; the first capture group is the
	// version string.
	version *regexp.Regexp
}

// browserRules is evaluated in order: Firefox, Opera, Edge, Chrome,
// Safari, Internet Explorer. Chrome descriptors contain "Safari" and
// Edge descriptors contain both "Chrome" and "Safari", hence the more
// specific names come first.
var browserRules = []browserRule{
	{
		name:    "Firefox",
		anyOf:   []string{"Firefox"},
		version: regexp.MustCompile(`Firefox/([0-9.]+)`),
	},
	{
		name:    "Opera",
		anyOf:   []string{"OPR", "Opera"},
		version: regexp.MustCompile(`(?:OPR|Opera)[/ ]([0-9.]+)`),
	},
	{
		name:    "Edge",
		anyOf:   []string{"Edg"},
		version: regexp.MustCompile(`Edg(?:e|A|iOS)?/([0-9.]+)`),
	},
	{
		name:    "Chrome",
		anyOf:   []string{"Chrome", "CriOS"},
		version: regexp.MustCompile(`(?:Chrome|CriOS)/([0-9.]+)`),
	},
	{
		name:    "Safari",
		anyOf:   []string{"Safari"},
		version: regexp.MustCompile(`Version/([0-9.]+)`),
	},
	{
		name:    "Internet Explorer",
		anyOf:   []string{"MSIE", "Trident"},
		version: regexp.MustCompile(`(?:MSIE |rv:)([0-9.]+)`),
	},
}

// classifyBrowser returns the browser name and version for the given
// descriptor, or Unknown for either when no rule matches.
func classifyBrowser(descriptor string) (name, version string) {
	for _, rule := range browserRules {
		if !containsAny(descriptor, rule.anyOf) {
			continue
		}
		version = Unknown
		if m := rule.version.FindStringSubmatch(descriptor); m != nil {
			version = m[1]
		}
		return rule.name, version
	}
	return Unknown, Unknown
}

// windowsVersions maps the NT version code inside the descriptor to
// the marketing version name.
var windowsVersions = []struct {
	code    string
	version string
}{
	{"Windows NT 10.0", "10"},
	{"Windows NT 6.3", "8.1"},
	{"Windows NT 6.2", "8"},
	{"Windows NT 6.1", "7"},
	{"Windows NT 6.0", "Vista"},
	{"Windows NT 5.1", "XP"},
}

// osRule matches an operating system by descriptor substring, again
// evaluated in table order with the first match winning.
type osRule struct {
	name    string
	anyOf   []string
	version func(descriptor string) string
}

// osRules is evaluated in order. iOS must come before macOS because
// iPad descriptors historically contain "Mac OS X" too; Android must
// come before Linux because Android descriptors contain "Linux".
var osRules = []osRule{
	{
		name:  "Windows",
		anyOf: []string{"Windows NT"},
		version: func(descriptor string) string {
			for _, w := range windowsVersions {
				if strings.Contains(descriptor, w.code) {
					return w.version
				}
			}
			return Unknown
		},
	},
	{
		name:    "iOS",
		anyOf:   []string{"iPhone OS", "iPad"},
		version: regexVersion(regexp.MustCompile(`OS (\d+(?:[._]\d+)*)`)),
	},
	{
		name:    "Android",
		anyOf:   []string{"Android"},
		version: regexVersion(regexp.MustCompile(`Android ([0-9.]+)`)),
	},
	{
		name:    "macOS",
		anyOf:   []string{"Mac OS X"},
		version: regexVersion(regexp.MustCompile(`Mac OS X (\d+(?:[._]\d+)*)`)),
	},
	{
		name:    "Linux",
		anyOf:   []string{"Linux"},
		version: func(descriptor string) string { return Unknown },
	},
}

// regexVersion builds a version extractor from a pattern whose first
// capture group is the version, normalizing "_" separators to ".".
func regexVersion(pattern *regexp.Regexp) func(string) string {
	return func(descriptor string) string {
		if m := pattern.FindStringSubmatch(descriptor); m != nil {
			return strings.ReplaceAll(m[1], "_", ".")
		}
		return Unknown
	}
}

// classifyOS returns the OS name and version for the given
// descriptor, or Unknown for either when no rule matches.
func classifyOS(descriptor string) (name, version string) {
	for _, rule := range osRules {
		if containsAny(descriptor, rule.anyOf) {
			return rule.name, rule.version(descriptor)
		}
	}
	return Unknown, Unknown
}

// mobileSignature matches descriptors of handheld devices.
var mobileSignature = regexp.MustCompile(
	`(?i)(mobi|iphone|ipod|ipad|android|blackberry|opera mini|windows phone|webos|kindle|silk)`)

// tabletSignature narrows a mobile match down to tablets. Android
// tablets advertise "Android" without "Mobile", which we handle in
// classifyDeviceType rather than here.
var tabletSignature = regexp.MustCompile(`(?i)(ipad|tablet|kindle|silk|playbook)`)

// classifyDeviceType returns "desktop", "mobile", or "tablet". A
// descriptor matching the mobile signature is "mobile", further
// narrowed to "tablet" when it also matches the tablet signature;
// everything else is "desktop".
func classifyDeviceType(descriptor string) string {
	if !mobileSignature.MatchString(descriptor) {
		return "desktop"
	}
	if tabletSignature.MatchString(descriptor) {
		return "tablet"
	}
	if strings.Contains(descriptor, "Android") && !strings.Contains(descriptor, "Mobile") {
		return "tablet"
	}
	return "mobile"
}

// containsAny returns whether the descriptor contains any of the
// given substrings.
func containsAny(descriptor string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.Contains(descriptor, candidate) {
			return true
		}
	}
	return false
}
