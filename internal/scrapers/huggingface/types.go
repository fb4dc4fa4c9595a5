package huggingface

// ModelRecord is one card of the trending models listing.
type ModelRecord struct {
	ModelID string  `json:"model_id"`
	Url     string  `json:"url"`
	Task    *string `json:"task"`
	// left as written on the card ("22B", "7.6M"), the notation is too varied to
	// normalize
	Parameters *string `json:"parameters"`
	Updated    *string `json:"updated"`
	Downloads  *int64  `json:"downloads"`
	Likes      *int64  `json:"likes"`
}

// PaperCard is what the trending papers listing says about one paper, merged over
// every card that links to it.
type PaperCard struct {
	Url         string
	Github      *string
	Arxiv       *string
	Upvotes     *int64
	Published   *string
	GithubStars *int64
}

// merge copies every field other provides, fields it lacks are left alone.
func (c *PaperCard) merge(other PaperCard) {
	if other.Github != nil {
		c.Github = other.Github
	}
	if other.Arxiv != nil {
		c.Arxiv = other.Arxiv
	}
	if other.Upvotes != nil {
		c.Upvotes = other.Upvotes
	}
	if other.Published != nil {
		c.Published = other.Published
	}
	if other.GithubStars != nil {
		c.GithubStars = other.GithubStars
	}
}

// PaperDetails is what a paper's own page says about it. Absent elements are
// "N/A", unlike cards where they are nil.
type PaperDetails struct {
	Title    string
	Abstract string
}

const NotAvailable = "N/A"

// PaperRecord is a trending paper with its card and detail page zipped together.
type PaperRecord struct {
	Title       string  `json:"title"`
	Abstract    string  `json:"abstract"`
	Url         string  `json:"url"`
	Github      *string `json:"github"`
	Arxiv       *string `json:"arxiv"`
	Upvotes     *int64  `json:"upvotes"`
	Published   *string `json:"published"`
	GithubStars *int64  `json:"github_stars"`
}

func newPaperRecord(card PaperCard, details PaperDetails) PaperRecord {
	return PaperRecord{
		Title:       details.Title,
		Abstract:    details.Abstract,
		Url:         card.Url,
		Github:      card.Github,
		Arxiv:       card.Arxiv,
		Upvotes:     card.Upvotes,
		Published:   card.Published,
		GithubStars: card.GithubStars,
	}
}

// CardSet is an insertion ordered map of paper url to card. Each parse builds its
// own set.
type CardSet struct {
	order []string
	cards map[string]*PaperCard
}

func newCardSet() *CardSet {
	return &CardSet{cards: map[string]*PaperCard{}}
}

// put merges card into the entry for its url, creating the entry at the end of the
// order if this is the first time the url is seen.
func (s *CardSet) put(card PaperCard) {
	existing, ok := s.cards[card.Url]
	if !ok {
		existing = &PaperCard{Url: card.Url}
		s.cards[card.Url] = existing
		s.order = append(s.order, card.Url)
	}
	existing.merge(card)
}

func (s *CardSet) Len() int {
	return len(s.order)
}

// Get returns a copy of the card for url.
func (s *CardSet) Get(url string) (PaperCard, bool) {
	card, ok := s.cards[url]
	if !ok {
		return PaperCard{}, false
	}
	return *card, true
}

// Cards returns copies of every card in the order their url was first seen.
func (s *CardSet) Cards() []PaperCard {
	out := make([]PaperCard, len(s.order))
	for i, url := range s.order {
		out[i] = *s.cards[url]
	}
	return out
}
