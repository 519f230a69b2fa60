// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-sweep pipeline.
package types

import "time"

// Record is a flat bibliographic record extracted from one PubMed citation.
// Created once per fetched article and immutable afterwards; the pipeline
// holds records in retrieval order for the life of a run.
type Record struct {
	// PMID is the PubMed accession identifier, unique per source.
	PMID string `json:"pmid" yaml:"pmid"`

	// DOI is the digital object identifier, empty when the citation has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Title is the article title as returned by the source, possibly empty.
	Title string `json:"title" yaml:"title"`

	// Authors lists the article authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Journal is the full journal title, falling back to the abbreviation.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// PubDate is the publication date at the finest precision present in the
	// source: "2023 Jan 15", "2023 Jan", or "2023".
	PubDate string `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`

	// Year is the four-digit publication year, empty when unknown.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages  string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// ArticleTypes lists publication types (e.g. "Journal Article", "Review").
	ArticleTypes []string `json:"article_types,omitempty" yaml:"article_types,omitempty"`

	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Abstract is the full abstract text; labeled sections are joined with
	// their labels preserved.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords lists author-provided keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Grants lists funding acknowledgements.
	Grants []string `json:"grants,omitempty" yaml:"grants,omitempty"`

	// PublicationStatus is the PubMed publication status (e.g. "ppublish").
	PublicationStatus string `json:"publication_status,omitempty" yaml:"publication_status,omitempty"`

	// PMCID is the PubMed Central identifier when the article is in PMC.
	PMCID string `json:"pmcid,omitempty" yaml:"pmcid,omitempty"`

	// Link is the article's PubMed URL.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Author is one author entry with an optional affiliation.
type Author struct {
	Name        string `json:"name" yaml:"name"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Display returns "Name (Affiliation)" or just the name when the
// affiliation is unknown.
func (a Author) Display() string {
	if a.Affiliation == "" {
		return a.Name
	}
	return a.Name + " (" + a.Affiliation + ")"
}

// ChunkStats records per-chunk fetch counts for the run summary.
type ChunkStats struct {
	// Query is the chunk's query text.
	Query string `json:"query" yaml:"query"`

	// Matched is the total match count reported by the search call.
	Matched int `json:"matched" yaml:"matched"`

	// Fetched is the number of records actually retrieved for this chunk.
	Fetched int `json:"fetched" yaml:"fetched"`
}

// RunSummary holds the derived counts produced at the end of a run.
type RunSummary struct {
	Query      string       `json:"query" yaml:"query"`
	Chunks     []ChunkStats `json:"chunks" yaml:"chunks"`
	Fetched    int          `json:"fetched" yaml:"fetched"`
	Kept       int          `json:"kept" yaml:"kept"`
	Removed    int          `json:"removed" yaml:"removed"`
	OutputBase string       `json:"output_base" yaml:"output_base"`
	Timestamp  time.Time    `json:"timestamp" yaml:"timestamp"`
}
