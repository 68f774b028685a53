package marketplace

// getAxiesQuery requests the fields needed to price a listing.
const getAxiesQuery = `
query GetAxies($auctionType: AuctionType, $criteria: AxieSearchCriteria, $from: Int, $size: Int) {
  axies(auctionType: $auctionType, criteria: $criteria, from: $from, size: $size) {
    results {
      id
      name
      breedCount
      order {
        currentPriceUsd
        currentPrice
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	AuctionType string         `json:"auctionType"`
	Criteria    searchCriteria `json:"criteria"`
	From        int            `json:"from"`
	Size        int            `json:"size"`
}

type searchCriteria struct {
	BreedCount []int `json:"breedCount"`
}

func newSearchRequest(c Criteria) graphQLRequest {
	breedCounts := c.BreedCounts
	if breedCounts == nil {
		breedCounts = []int{}
	}
	return graphQLRequest{
		Query: getAxiesQuery,
		Variables: queryVariables{
			AuctionType: c.AuctionType,
			Criteria:    searchCriteria{BreedCount: breedCounts},
			From:        c.From,
			Size:        c.Size,
		},
	}
}
