package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/participant --output domain/participant --outpkg participantmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/weeklyresult --output domain/weeklyresult --outpkg weeklyresultmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Committer --dir ../domain/leaderboard --output domain/leaderboard --outpkg leaderboardmock --filename committer_mock.go
