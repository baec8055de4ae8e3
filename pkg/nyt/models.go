package nyt

// searchResponse represents the response from the NYT article-search endpoint
type searchResponse struct {
	Status   string     `json:"status"`
	Response searchBody `json:"response"`
}

type searchBody struct {
	Docs []doc      `json:"docs"`
	Meta searchMeta `json:"meta"`
}

type searchMeta struct {
	Hits   int `json:"hits"`
	Offset int `json:"offset"`
}

type doc struct {
	Headline       headline `json:"headline"`
	Abstract       string   `json:"abstract"`
	WebURL         string   `json:"web_url"`
	SectionName    string   `json:"section_name"`
	TypeOfMaterial string   `json:"type_of_material"`
	PubDate        string   `json:"pub_date"`
}

type headline struct {
	Main string `json:"main"`
}
