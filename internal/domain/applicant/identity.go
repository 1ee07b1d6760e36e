package applicant

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	unknownName  = "Unknown Applicant"
	unknownEmail = "unknown@example.com"
	unknownPhone = "+1-555-0000"
	emailDomain  = "example.com"
)

var (
	resumeFilePattern = regexp.MustCompile(`^([a-z_]+?)(_resume)?(\.pdf|\.doc|\.docx)?$`)
	nameSeparators    = regexp.MustCompile(`[-_ ]+`)
	nonAlphanumeric   = regexp.MustCompile(`[^a-z0-9]`)
)

// Identity is the name, email and phone guessed from a resume file name.
type Identity struct {
	FullName string
	Email    string
	Phone    string
}

// IdentityFromFilename derives a placeholder identity from a file name such as
// "john_doe_resume.pdf". It is a naming convention, not resume parsing.
func IdentityFromFilename(filename string) Identity {
	return identityFromFilename(filename, func() int { return 1000 + rand.IntN(9000) })
}

func identityFromFilename(filename string, phoneSuffix func() int) Identity {
	id := Identity{FullName: unknownName, Email: unknownEmail, Phone: unknownPhone}
	name := strings.ToLower(strings.TrimSpace(filename))

	if m := resumeFilePattern.FindStringSubmatch(name); m != nil && strings.Trim(m[1], "_") != "" {
		id.FullName = titleWords(strings.Split(m[1], "_"))
		id.Email = emailFor(strings.Split(m[1], "_")...)
		id.Phone = fmt.Sprintf("+1-555-%d", phoneSuffix())
		return id
	}

	stem, _, _ := strings.Cut(name, ".")
	parts := nameSeparators.Split(stem, -1)
	if len(parts) > 1 {
		if fullName := titleWords(parts[:len(parts)-1]); fullName != "" {
			id.FullName = fullName
		}
		id.Email = emailFor(parts[0], parts[1])
		return id
	}

	if fullName := titleWords(strings.Split(stem, "_")); fullName != "" {
		id.FullName = fullName
	}
	id.Email = emailFor(stem)
	return id
}

// emailFor joins the alphanumeric parts of words with dots. Empty parts are
// skipped so the local part never starts, ends or repeats a dot.
func emailFor(words ...string) string {
	local := make([]string, 0, len(words))
	for _, w := range words {
		if w = nonAlphanumeric.ReplaceAllString(w, ""); w != "" {
			local = append(local, w)
		}
	}
	if len(local) == 0 {
		return unknownEmail
	}
	return strings.Join(local, ".") + "@" + emailDomain
}

func titleWords(words []string) string {
	caser := cases.Title(language.Und)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, caser.String(w))
	}
	return strings.Join(out, " ")
}
