package testsupport

import "bingeboard/internal/media"

// Movie returns a catalog movie fixture.
func Movie(id, title string, genreIDs ...int) media.Recommendation {
	if len(genreIDs) == 0 {
		genreIDs = []int{28}
	}
	return media.Recommendation{
		ID:               media.ID(id),
		Title:            title,
		PosterURL:        "https://image.tmdb.org/t/p/w500/" + id + ".jpg",
		Genre:            "Action",
		GenreIDs:         genreIDs,
		MediaType:        media.Movie,
		OriginalLanguage: "en",
		ReleaseDate:      "2010-07-16",
	}
}

// Series returns a catalog TV fixture.
func Series(id, title string) media.Recommendation {
	return media.Recommendation{
		ID:               media.ID(id),
		Title:            title,
		PosterURL:        "https://image.tmdb.org/t/p/w500/" + id + ".jpg",
		Genre:            "Drama",
		GenreIDs:         []int{18},
		MediaType:        media.TV,
		OriginalLanguage: "en",
		FirstAirDate:     "2011-04-17",
	}
}
