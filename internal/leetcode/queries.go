package leetcode

const problemListQuery = `query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(
    categorySlug: $categorySlug
    limit: $limit
    skip: $skip
    filters: $filters
  ) {
    total: totalNum
    questions: data {
      acRate
      difficulty
      frontendQuestionId: questionFrontendId
      paidOnly: isPaidOnly
      status
      title
      titleSlug
      topicTags {
        name
        id
        slug
      }
    }
  }
}`

const questionContentQuery = `query questionContent($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    content
    codeSnippets {
      langSlug
      code
    }
  }
}`

const questionQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    acRate
    difficulty
    frontendQuestionId: questionFrontendId
    paidOnly: isPaidOnly
    status
    title
    titleSlug
    topicTags {
      name
      id
      slug
    }
    content
    codeSnippets {
      langSlug
      code
    }
  }
}`

type topicTag struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type codeSnippet struct {
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

type questionData struct {
	AcRate             float64       `json:"acRate"`
	Difficulty         string        `json:"difficulty"`
	FrontendQuestionID string        `json:"frontendQuestionId"`
	PaidOnly           bool          `json:"paidOnly"`
	Status             *string       `json:"status"`
	Title              string        `json:"title"`
	TitleSlug          string        `json:"titleSlug"`
	TopicTags          []topicTag    `json:"topicTags"`
	Content            *string       `json:"content"`
	CodeSnippets       []codeSnippet `json:"codeSnippets"`
}

type problemListData struct {
	ProblemsetQuestionList struct {
		Total     int            `json:"total"`
		Questions []questionData `json:"questions"`
	} `json:"problemsetQuestionList"`
}

type questionResponse struct {
	Question *questionData `json:"question"`
}

func snippetFor(snippets []codeSnippet, lang string) string {
	for _, s := range snippets {
		if s.LangSlug == lang {
			return s.Code
		}
	}
	return ""
}
