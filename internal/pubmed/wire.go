// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

// E-utilities wire formats. ESearch is requested with retmode=json;
// EFetch only supports XML for full PubMed records.

// esearchEnvelope is the top-level ESearch JSON response.
type esearchEnvelope struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	// Count is the total number of matches, as a decimal string.
	Count string `json:"count"`

	// IDList holds up to retmax matching PMIDs.
	IDList []string `json:"idlist"`
}

// articleSet is the root element of an EFetch XML response.
type articleSet struct {
	Articles []PubmedArticle `xml:"PubmedArticle"`
}

// PubmedArticle is one citation as returned by EFetch. The shape is loose:
// every field is optional and extraction tolerates absence.
type PubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
	PubmedData      pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID         string        `xml:"PMID"`
	Article      articleData   `xml:"Article"`
	KeywordLists []keywordList `xml:"KeywordList"`
}

type articleData struct {
	Title            string         `xml:"ArticleTitle"`
	Journal          journalInfo    `xml:"Journal"`
	Pagination       pagination     `xml:"Pagination"`
	Abstract         abstractData   `xml:"Abstract"`
	AuthorList       authorList     `xml:"AuthorList"`
	Languages        []string       `xml:"Language"`
	PublicationTypes []string       `xml:"PublicationTypeList>PublicationType"`
	ELocationIDs     []eLocationID  `xml:"ELocationID"`
	GrantList        grantList      `xml:"GrantList"`
}

type journalInfo struct {
	Title           string       `xml:"Title"`
	ISOAbbreviation string       `xml:"ISOAbbreviation"`
	Issue           journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	Volume  string  `xml:"Volume"`
	Issue   string  `xml:"Issue"`
	PubDate pubDate `xml:"PubDate"`
}

// pubDate carries either structured Year/Month/Day fields (each optional
// beyond Year) or a free-form MedlineDate like "1998 Dec-1999 Jan".
type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type pagination struct {
	MedlinePgn string `xml:"MedlinePgn"`
}

type abstractData struct {
	Sections []abstractText `xml:"AbstractText"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type authorList struct {
	Authors []xmlAuthor `xml:"Author"`
}

type xmlAuthor struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	Initials       string   `xml:"Initials"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

type eLocationID struct {
	Type  string `xml:"EIdType,attr"`
	Valid string `xml:"ValidYN,attr"`
	Value string `xml:",chardata"`
}

type grantList struct {
	Grants []grant `xml:"Grant"`
}

type grant struct {
	GrantID string `xml:"GrantID"`
	Agency  string `xml:"Agency"`
}

type keywordList struct {
	Keywords []string `xml:"Keyword"`
}

type pubmedData struct {
	ArticleIDs        []articleID `xml:"ArticleIdList>ArticleId"`
	PublicationStatus string      `xml:"PublicationStatus"`
}

type articleID struct {
	Type  string `xml:"IdType,attr"`
	Value string `xml:",chardata"`
}
