// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strings"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

// ExtractRecord flattens one raw citation into a Record. It is a total
// function: missing fields map to empty values, never to an error.
func ExtractRecord(art PubmedArticle) types.Record {
	cit := art.MedlineCitation
	data := art.PubmedData

	pmid := strings.TrimSpace(cit.PMID)
	rec := types.Record{
		PMID:              pmid,
		DOI:               extractDOI(art),
		Title:             strings.TrimSpace(cit.Article.Title),
		Authors:           extractAuthors(cit.Article.AuthorList),
		Journal:           journalTitle(cit.Article.Journal),
		Volume:            cit.Article.Journal.Issue.Volume,
		Issue:             cit.Article.Journal.Issue.Issue,
		Pages:             cit.Article.Pagination.MedlinePgn,
		ArticleTypes:      trimAll(cit.Article.PublicationTypes),
		Language:          strings.Join(cit.Article.Languages, "; "),
		Abstract:          joinAbstract(cit.Article.Abstract),
		Keywords:          extractKeywords(cit.KeywordLists),
		Grants:            extractGrants(cit.Article.GrantList),
		PublicationStatus: data.PublicationStatus,
		PMCID:             articleIDByType(data.ArticleIDs, "pmc"),
	}
	rec.PubDate, rec.Year = normalizeDate(cit.Article.Journal.Issue.PubDate)
	if pmid != "" {
		rec.Link = "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
	}
	return rec
}

// extractDOI prefers a validated ELocationID of type doi, then falls back
// to the ArticleIdList entry.
func extractDOI(art PubmedArticle) string {
	for _, loc := range art.MedlineCitation.Article.ELocationIDs {
		if loc.Type == "doi" && loc.Valid != "N" {
			if v := strings.TrimSpace(loc.Value); v != "" {
				return v
			}
		}
	}
	return articleIDByType(art.PubmedData.ArticleIDs, "doi")
}

func articleIDByType(ids []articleID, idType string) string {
	for _, id := range ids {
		if id.Type == idType {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

// extractAuthors pairs each author with their affiliation. Entries missing
// an affiliation keep an empty one; collective names stand in for personal
// names when present.
func extractAuthors(list authorList) []types.Author {
	var authors []types.Author
	for _, a := range list.Authors {
		name := a.CollectiveName
		if name == "" {
			switch {
			case a.ForeName != "" && a.LastName != "":
				name = a.LastName + " " + a.Initials
				if a.Initials == "" {
					name = a.LastName + " " + a.ForeName
				}
			case a.LastName != "":
				name = a.LastName
			}
		}
		if name == "" {
			continue
		}
		author := types.Author{Name: name}
		if len(a.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(a.Affiliations[0])
		}
		authors = append(authors, author)
	}
	return authors
}

func journalTitle(j journalInfo) string {
	if j.Title != "" {
		return j.Title
	}
	return j.ISOAbbreviation
}

// joinAbstract concatenates abstract sections, keeping the labels of
// structured abstracts ("BACKGROUND: ...", "METHODS: ...").
func joinAbstract(a abstractData) string {
	var parts []string
	for _, s := range a.Sections {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if s.Label != "" {
			text = s.Label + ": " + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// normalizeDate renders the finest precision present: "2023 Jan 15",
// "2023 Jan", or "2023". Free-form MedlineDate values pass through
// unchanged with the leading year, when parseable, as the year.
func normalizeDate(d pubDate) (date string, year string) {
	if d.Year != "" {
		parts := []string{d.Year}
		if d.Month != "" {
			parts = append(parts, d.Month)
			if d.Day != "" {
				parts = append(parts, d.Day)
			}
		}
		return strings.Join(parts, " "), d.Year
	}
	md := strings.TrimSpace(d.MedlineDate)
	if md == "" {
		return "", ""
	}
	if len(md) >= 4 && isDigits(md[:4]) {
		return md, md[:4]
	}
	return md, ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func extractKeywords(lists []keywordList) []string {
	var keywords []string
	for _, l := range lists {
		keywords = append(keywords, trimAll(l.Keywords)...)
	}
	return keywords
}

func extractGrants(list grantList) []string {
	var grants []string
	for _, g := range list.Grants {
		switch {
		case g.GrantID != "" && g.Agency != "":
			grants = append(grants, g.GrantID+" ("+g.Agency+")")
		case g.GrantID != "":
			grants = append(grants, g.GrantID)
		case g.Agency != "":
			grants = append(grants, g.Agency)
		}
	}
	return grants
}

func trimAll(ss []string) []string {
	var out []string
	for _, s := range ss {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
