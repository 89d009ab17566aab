package anilist

var userListsQuery = `
query ($userName: String) {
  MediaListCollection(userName: $userName, type: ANIME) {
    lists {
      status
      entries {
        mediaId
        status
        media {
          countryOfOrigin
        }
      }
    }
  }
}`

var searchMediaQuery = `
query (
  $page: Int
  $perPage: Int
  $genre: String
  $scoreGreater: Int
  $scoreLesser: Int
  $isAdult: Boolean
  $country: CountryCode
  $idIn: [Int]
  $idNotIn: [Int]
  $sort: [MediaSort]
  $formatNotIn: [MediaFormat]
) {
  Page(page: $page, perPage: $perPage) {
    media(
      type: ANIME
      genre: $genre
      averageScore_greater: $scoreGreater
      averageScore_lesser: $scoreLesser
      isAdult: $isAdult
      countryOfOrigin: $country
      id_in: $idIn
      id_not_in: $idNotIn
      sort: $sort
      format_not_in: $formatNotIn
    ) {
      id
      title {
        romaji
      }
      description
      coverImage {
        extraLarge
        large
        medium
      }
      averageScore
      siteUrl
      countryOfOrigin
      genres
      isAdult
    }
  }
}`

var genreCollectionQuery = `
query {
  GenreCollection
}`
