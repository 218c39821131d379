/*
Package dawg builds a minimal Directed Acyclic Word Graph: the smallest
deterministic automaton that accepts exactly the words of a finite
lexicon.

Words are added to a Builder in strictly increasing order. Each new word
first follows the longest prefix that already has a path, then the branch
left behind by the previous word is minimized against a register of
canonical states, and finally the rest of the word is appended as a chain
of fresh states. Because the input is sorted, a branch is finished the
moment the next word diverges from it, so no full minimization pass is
needed. The two restrictions are that you cannot repeat a word, and words
must be in strictly increasing order; the Builder rejects anything else
with ErrOutOfOrder instead of sorting for you (see the lexicon package for
that).

After all the words are added, call Finish() which returns an *Automaton.
The automaton is immutable and safe for concurrent queries: membership
with Accepts, the word's rank with IndexOf, prefix lookups with
FindAllPrefixesOf, and the whole language with Language or the lazy Words
sequence.

An automaton can be exported as a list of states and transitions (Export,
EncodeJSON, EncodeYAML) and imported again (Import, DecodeJSON,
DecodeYAML), or written in a compact bit-packed form with Save and opened
again with Load. A summary of the binary format is found at the top of
disk.go.
*/
package dawg
