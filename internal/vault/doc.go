// Package vault writes sync output into an Obsidian vault.
//
// # Overview
//
// A vault is a directory of markdown notes. Daily notes live at a path derived
// from the note date and a Go time layout, e.g. "2006/01/02.md" places the note
// for 1 May 2024 at <vault>/2024/05/01.md.
//
// Key Types
//
//   - type Appender      contract used by the sync app
//   - type FileAppender  filesystem implementation over filex
//
// Typical Usage
//
//	v := vault.NewFileAppender(cfg.VaultPath, cfg.NoteLayout, logger)
//	entry := v.Entry(date, text)
//	n, err := v.Append(ctx, entry)
//
// Appends are additive: existing note content is never rewritten.
package vault
