// Package conversation owns the scripted question sequence that refines a
// roof estimate, and the state machine that walks a session through it.
// The sequence is a fixed, branchless singly-linked list of question
// definitions built once at process start and shared read-only; the next
// question never depends on the answer given.
package conversation

// Kind distinguishes single-choice from multiple-choice questions.
type Kind string

const (
	KindChoice         Kind = "choice"
	KindMultipleChoice Kind = "multiple_choice"
)

// Option is one selectable answer: a stable value and a display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is an immutable question definition. Next is the id of the
// following question, or "" for the terminal question.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Kind    Kind     `json:"type"`
	Options []Option `json:"options"`
	Next    string   `json:"next_question,omitempty"`
}

// Sequence is an ordered, cycle-free question list with id lookup.
type Sequence struct {
	first string
	byID  map[string]Question
	order []string
}

// NewSequence builds a sequence from questions already linked via Next.
// The first element is the entry point. It panics on duplicate ids or on a
// Next pointing outside the list, both of which are programming errors in
// the static catalogue.
func NewSequence(questions ...Question) *Sequence {
	if len(questions) == 0 {
		panic("conversation: empty question sequence")
	}
	s := &Sequence{
		first: questions[0].ID,
		byID:  make(map[string]Question, len(questions)),
		order: make([]string, 0, len(questions)),
	}
	for _, q := range questions {
		if _, dup := s.byID[q.ID]; dup {
			panic("conversation: duplicate question id " + q.ID)
		}
		s.byID[q.ID] = q
		s.order = append(s.order, q.ID)
	}
	for _, q := range questions {
		if q.Next == "" {
			continue
		}
		if _, ok := s.byID[q.Next]; !ok {
			panic("conversation: question " + q.ID + " links to unknown " + q.Next)
		}
	}
	return s
}

// First returns the entry question.
func (s *Sequence) First() Question { return s.byID[s.first] }

// Get looks up a question by id.
func (s *Sequence) Get(id string) (Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Contains reports whether id belongs to the sequence.
func (s *Sequence) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Total returns the number of questions.
func (s *Sequence) Total() int { return len(s.byID) }

// IDs returns the question ids in definition order.
func (s *Sequence) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Default returns the production question catalogue: six questions walking
// from roof type to insulation. Prompt and label text is French, matching
// the product's audience.
func Default() *Sequence {
	return NewSequence(
		Question{
			ID:     "roof_type",
			Prompt: "Quel est le type de votre toiture actuelle ?",
			Kind:   KindChoice,
			Options: []Option{
				{Value: "tuiles_terre_cuite", Label: "Tuiles en terre cuite"},
				{Value: "tuiles_beton", Label: "Tuiles en béton"},
				{Value: "ardoise", Label: "Ardoise"},
				{Value: "zinc", Label: "Zinc"},
				{Value: "bac_acier", Label: "Bac acier"},
				{Value: "autre", Label: "Autre / Je ne sais pas"},
			},
			Next: "roof_condition",
		},
		Question{
			ID:     "roof_condition",
			Prompt: "Quel est l'état général de votre toiture ?",
			Kind:   KindChoice,
			Options: []Option{
				{Value: "neuve", Label: "Neuve (moins de 5 ans)"},
				{Value: "bon_etat", Label: "Bon état (5-15 ans)"},
				{Value: "usee", Label: "Usée (15-30 ans)"},
				{Value: "endommagee", Label: "Endommagée (fuites, tuiles cassées)"},
			},
			Next: "roof_elements",
		},
		Question{
			ID:     "roof_elements",
			Prompt: "Y a-t-il des éléments spécifiques sur votre toiture ?",
			Kind:   KindMultipleChoice,
			Options: []Option{
				{Value: "cheminee", Label: "Cheminée(s)"},
				{Value: "lucarne", Label: "Lucarne(s)"},
				{Value: "fenetre_toit", Label: "Fenêtre(s) de toit"},
				{Value: "panneaux_solaires", Label: "Panneaux solaires"},
				{Value: "antenne", Label: "Antenne/Parabole"},
				{Value: "aucun", Label: "Aucun élément particulier"},
			},
			Next: "roof_access",
		},
		Question{
			ID:     "roof_access",
			Prompt: "Comment évaluez-vous l'accès à votre toiture ?",
			Kind:   KindChoice,
			Options: []Option{
				{Value: "facile", Label: "Facile (maison plain-pied, bon accès)"},
				{Value: "moyen", Label: "Moyen (étage, quelques contraintes)"},
				{Value: "difficile", Label: "Difficile (hauteur importante, accès restreint)"},
			},
			Next: "material_preference",
		},
		Question{
			ID:     "material_preference",
			Prompt: "Avez-vous une préférence pour le type de matériau ?",
			Kind:   KindChoice,
			Options: []Option{
				{Value: "identique", Label: "Identique à l'existant"},
				{Value: "amelioration", Label: "Amélioration (meilleure qualité)"},
				{Value: "economique", Label: "Solution économique"},
				{Value: "ecologique", Label: "Solution écologique"},
				{Value: "pas_preference", Label: "Pas de préférence particulière"},
			},
			Next: "insulation",
		},
		Question{
			ID:     "insulation",
			Prompt: "Souhaitez-vous améliorer l'isolation de votre toiture ?",
			Kind:   KindChoice,
			Options: []Option{
				{Value: "oui_complete", Label: "Oui, isolation complète"},
				{Value: "oui_partielle", Label: "Oui, amélioration partielle"},
				{Value: "non", Label: "Non, pas d'isolation"},
				{Value: "pas_sur", Label: "Je ne sais pas / À voir"},
			},
		},
	)
}
