// Package fixtures holds the athlete roster and FAQ collections used by tests and the default seed.
package fixtures

import (
	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/model"
)

// AthleteSettings returns the facet schema of the athlete portfolio.
func AthleteSettings() *config.CollectionSettings {
	return &config.CollectionSettings{
		Name:              "athletes",
		CategoricalFacets: []string{"position", "nationality", "team"},
		NumericFacets: []config.NumericFacet{
			{Field: "age", Format: config.NumericFormatNumber, Domain: &model.Range{Min: 18, Max: 35}},
			{Field: "marketValue", Format: config.NumericFormatStripped, Domain: &model.Range{Min: 0, Max: 100}},
			{Field: "performance", Format: config.NumericFormatNumber, Domain: &model.Range{Min: 0, Max: 100}},
			{Field: "joinedYear", Format: config.NumericFormatNumber, Domain: &model.Range{Min: 2015, Max: 2024}},
		},
		SearchableFields: []string{"name", "team", "position", "nationality"},
		SuggestionSources: []config.SuggestionSource{
			{Field: "name", Kind: "name", LabelPrefix: "Player: "},
			{Field: "team", Kind: "team", LabelPrefix: "Team: "},
			{Field: "position", Kind: "position", LabelPrefix: "Position: "},
		},
		SuggestionLimit:         6,
		MinSuggestionTermLength: 1,
		SortOptions: []config.SortOption{
			{Name: "rank", Criteria: []config.RankingCriterion{{Field: "rank", Order: "asc"}}},
			{Name: "performance", Criteria: []config.RankingCriterion{{Field: "performance", Order: "desc"}, {Field: "name", Order: "asc"}}},
			{Name: "age", Criteria: []config.RankingCriterion{{Field: "age", Order: "asc"}}},
		},
		Presets: []config.Preset{
			{Name: "Top Performers", Criteria: model.FilterCriteria{Ranges: map[string]model.Range{
				"performance": {Min: 90, Max: 100},
				"marketValue": {Min: 50, Max: 100},
			}}},
			{Name: "Young Talents", Criteria: model.FilterCriteria{Ranges: map[string]model.Range{
				"age":         {Min: 18, Max: 23},
				"performance": {Min: 75, Max: 100},
			}}},
			{Name: "Premier League", Criteria: model.FilterCriteria{Categories: map[string][]string{
				"team": {"Manchester City", "Manchester United", "Liverpool", "Arsenal", "Chelsea"},
			}}},
			{Name: "High Value", Criteria: model.FilterCriteria{Ranges: map[string]model.Range{
				"marketValue": {Min: 70, Max: 100},
			}}},
		},
	}
}

// Athletes returns the six-athlete roster in rank order.
func Athletes() []model.Record {
	return []model.Record{
		{"id": "1", "rank": 1, "name": "Carlos Rodriguez", "position": "Forward", "team": "Real Madrid", "nationality": "Spain", "age": 24, "marketValue": "€85M", "performance": 95, "joinedYear": 2019},
		{"id": "2", "rank": 2, "name": "João Silva", "position": "Midfielder", "team": "Barcelona", "nationality": "Portugal", "age": 22, "marketValue": "€65M", "performance": 88, "joinedYear": 2020},
		{"id": "3", "rank": 3, "name": "Marcus Johnson", "position": "Defender", "team": "Manchester United", "nationality": "England", "age": 26, "marketValue": "€45M", "performance": 82, "joinedYear": 2018},
		{"id": "4", "rank": 4, "name": "Alessandro Rossi", "position": "Goalkeeper", "team": "AC Milan", "nationality": "Italy", "age": 28, "marketValue": "€35M", "performance": 90, "joinedYear": 2021},
		{"id": "5", "rank": 5, "name": "Maria Gonzalez", "position": "Forward", "team": "Barcelona Femení", "nationality": "Spain", "age": 23, "marketValue": "€25M", "performance": 93, "joinedYear": 2022},
		{"id": "6", "rank": 6, "name": "Diego Martinez", "position": "Winger", "team": "Manchester City", "nationality": "Argentina", "age": 25, "marketValue": "€75M", "performance": 89, "joinedYear": 2019},
	}
}

// FAQSettings returns the facet schema of the FAQ section.
func FAQSettings() *config.CollectionSettings {
	return &config.CollectionSettings{
		Name:              "faq",
		CategoricalFacets: []string{"category"},
		SearchableFields:  []string{"question", "answer", "keywords"},
		SuggestionSources: []config.SuggestionSource{
			{Field: "question", Kind: "question"},
			{Field: "keywords", Kind: "keyword"},
		},
		SuggestionLimit:         5,
		MinSuggestionTermLength: 2,
		SortOptions: []config.SortOption{
			{Name: "popular", Criteria: []config.RankingCriterion{{Field: "popularity", Order: "desc"}}},
			{Name: "recent", Criteria: []config.RankingCriterion{{Field: "lastUpdated", Order: "desc"}}},
			{Name: "helpful", Criteria: []config.RankingCriterion{{Field: "helpful", Order: "desc"}}},
			{Name: "alphabetical", Criteria: []config.RankingCriterion{{Field: "question", Order: "asc"}}},
		},
		DefaultSort: "popular",
		EnableVotes: true,
	}
}

// FAQs returns a subset of the FAQ entries.
func FAQs() []model.Record {
	return []model.Record{
		{"id": 1, "category": "athletes", "question": "How do I join Elite Sports Agency?",
			"answer":   "Submit your profile through our contact form or be scouted by our talent identification team.",
			"keywords": []string{"join", "apply", "submit", "profile", "scout", "talent"}, "popularity": 95, "lastUpdated": "2024-01-15", "helpful": 89},
		{"id": 2, "category": "athletes", "question": "What percentage does the agency take from transfers?",
			"answer":   "Our commission typically ranges from 5-10% depending on deal size and services provided.",
			"keywords": []string{"percentage", "commission", "fee", "cost", "transfer", "money"}, "popularity": 92, "lastUpdated": "2024-01-10", "helpful": 156},
		{"id": 3, "category": "athletes", "question": "Do you represent youth players?",
			"answer":   "Yes, our youth development program accepts promising players from age 16 onwards.",
			"keywords": []string{"youth", "young", "junior", "academy", "development", "education"}, "popularity": 88, "lastUpdated": "2024-01-12", "helpful": 134},
		{"id": 4, "category": "clubs", "question": "How can clubs contact you about a player?",
			"answer":   "Clubs can use the club portal or contact our transfer department directly.",
			"keywords": []string{"club", "contact", "transfer", "negotiate", "portal", "email"}, "popularity": 85, "lastUpdated": "2024-01-08", "helpful": 98},
		{"id": 5, "category": "clubs", "question": "Do you provide player scouting reports?",
			"answer":   "We provide scouting reports including performance analytics and tactical analysis.",
			"keywords": []string{"scouting", "report", "analytics", "performance", "data", "analysis"}, "popularity": 82, "lastUpdated": "2024-01-14", "helpful": 76},
		{"id": 6, "category": "services", "question": "What services do you offer beyond contract negotiation?",
			"answer":   "Brand development, financial planning, legal support and career transition planning.",
			"keywords": []string{"services", "brand", "financial", "legal", "support", "management"}, "popularity": 90, "lastUpdated": "2024-01-11", "helpful": 187},
	}
}
