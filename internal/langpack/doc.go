// Package langpack reads the on-disk language packs that back lemma and
// translation lookups.
//
// A lemma pack lives at <lemma_dir>/<lang>/lemmas.db and holds a
// lemmas(word, lemma) table. Translation packs live at
// <translation_dir>/<from>-<to>.db with a translations table; the reverse
// direction file is used when the forward one is absent. Packs are opened
// read-only through modernc.org/sqlite and cached for the life of the Store.
package langpack
