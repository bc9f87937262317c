// Package hallucination strips text that speech-to-text models fabricate from
// silence or poor audio: video-platform outros, non-speech markers such as
// [MUSIC], subtitle credit lines, and loops of the same sentence emitted over
// and over.
//
// Removal rules live in a static, ordered pattern table. Each rule belongs to
// one Category and Settings decides which categories run. Phrase rules are
// whole-phrase expressions, never bare keywords, so ordinary speech such as
// "I want to subscribe to lessons" passes through untouched.
//
// All functions are pure and safe for concurrent use.
package hallucination
