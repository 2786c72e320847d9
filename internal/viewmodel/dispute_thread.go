package viewmodel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/google/uuid"
)

// A dispute's description carries its whole thread as delimited text:
// the original report, then zero or more update blocks. Two block
// formats exist because the encoding changed over the system's life:
//
//	[Update by Aisyah Rahman on 12 Mar 2026]: content
//	[Update by 6f1b...-uuid]: content                 (legacy)
//
// Legacy blocks record a participant ID that has to be resolved to a
// display name against the project's known parties.

// ThreadDelimiter separates blocks inside the description.
const ThreadDelimiter = "\n---\n"

// UnknownAuthor is used when a legacy participant ID cannot be
// resolved.
const UnknownAuthor = "Unknown User"

var (
	updateBlockPattern = regexp.MustCompile(`(?s)^\[Update by (.+?) on (.+?)\]:\s?(.*)$`)
	legacyBlockPattern = regexp.MustCompile(`(?s)^\[Update by ([0-9a-fA-F-]{36})\]:\s?(.*)$`)
)

// ThreadEntry is one rendered block of a dispute thread.
type ThreadEntry struct {
	Author  string
	Date    string // raw date text from the block; empty for legacy and original entries
	Content string
}

// ParseDisputeThread splits a dispute description into its thread
// entries. The project supplies participant names for legacy blocks;
// it may be nil.
func ParseDisputeThread(d *domain.Dispute, project *domain.Project) []ThreadEntry {
	if d == nil {
		return nil
	}
	segments := strings.Split(d.Description, ThreadDelimiter)

	entries := make([]ThreadEntry, 0, len(segments))
	original := ThreadEntry{Content: strings.TrimSpace(segments[0])}
	if d.RaisedBy != nil {
		original.Author = d.RaisedBy.Name
	}
	entries = append(entries, original)

	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		entries = append(entries, parseUpdateBlock(seg, d, project))
	}
	return entries
}

func parseUpdateBlock(seg string, d *domain.Dispute, project *domain.Project) ThreadEntry {
	// Legacy first: a uuid-shaped author would also match the broader
	// named pattern if the content happens to contain " on ".
	if m := legacyBlockPattern.FindStringSubmatch(seg); m != nil {
		if _, err := uuid.Parse(m[1]); err == nil {
			return ThreadEntry{
				Author:  resolveParticipant(m[1], d, project),
				Content: strings.TrimSpace(m[2]),
			}
		}
	}
	if m := updateBlockPattern.FindStringSubmatch(seg); m != nil {
		return ThreadEntry{
			Author:  m[1],
			Date:    m[2],
			Content: strings.TrimSpace(m[3]),
		}
	}
	// Unrecognized block: keep the raw text rather than dropping it.
	return ThreadEntry{Author: UnknownAuthor, Content: seg}
}

func resolveParticipant(id string, d *domain.Dispute, project *domain.Project) string {
	if name, ok := project.ParticipantName(id); ok {
		return name
	}
	if d.RaisedBy != nil && d.RaisedBy.ID == id {
		return d.RaisedBy.Name
	}
	return UnknownAuthor
}

// FormatUpdateBlock renders a new thread block in the current format.
func FormatUpdateBlock(author string, at time.Time, content string) string {
	return fmt.Sprintf("[Update by %s on %s]: %s", author, at.Format("2 Jan 2006"), content)
}

// AppendUpdate returns the description with a new block appended.
func AppendUpdate(description, author string, at time.Time, content string) string {
	return description + ThreadDelimiter + FormatUpdateBlock(author, at, content)
}
