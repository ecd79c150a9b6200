package models

type RedditListingResponse struct {
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string               `json:"after"`
	Children []RedditListingChild `json:"children"`
}

type RedditListingChild struct {
	Data RedditPostData `json:"data"`
}

type RedditPostData struct {
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author_fullname"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
}
