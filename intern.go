package main

// Interner maps labels to dense Tokens starting at 1, in first-seen order.
// A token is never renumbered or reused for the lifetime of the Interner.
// Not safe for concurrent use.
type Interner struct {
	tokens map[string]Token
	labels []string // labels[t-1] is the label of token t
}

func NewInterner() *Interner {
	return &Interner{tokens: make(map[string]Token)}
}

// Intern returns the token for label, allocating Len()+1 on first sight.
func (in *Interner) Intern(label string) Token {
	if t, ok := in.tokens[label]; ok {
		return t
	}
	t := Token(len(in.labels) + 1)
	in.tokens[label] = t
	in.labels = append(in.labels, label)
	return t
}

// Lookup returns the token of a label seen before, without allocating one.
func (in *Interner) Lookup(label string) (Token, bool) {
	t, ok := in.tokens[label]
	return t, ok
}

// Label is the reverse of Intern.
func (in *Interner) Label(t Token) (string, bool) {
	if t < 1 || int(t) > len(in.labels) {
		return "", false
	}
	return in.labels[t-1], true
}

// Len is the number of distinct labels, which is also the highest token.
func (in *Interner) Len() int { return len(in.labels) }
