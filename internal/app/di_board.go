package app

import (
	"fmt"

	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
	boardHTTP "github.com/onionboard/backend/internal/board/http"
	boardRepository "github.com/onionboard/backend/internal/board/repository"
	boardUseCase "github.com/onionboard/backend/internal/board/usecase"
)

// ArticleRepository returns the article repository based on database driver.
func (c *Container) ArticleRepository() (boardUseCase.ArticleRepository, error) {
	var err error
	c.articleRepoInit.Do(func() {
		c.articleRepo, err = c.initArticleRepository()
		if err != nil {
			c.initErrors["articleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleRepo"]; exists {
		return nil, storedErr
	}
	return c.articleRepo, nil
}

// CommentRepository returns the comment repository based on database driver.
func (c *Container) CommentRepository() (boardUseCase.CommentRepository, error) {
	var err error
	c.commentRepoInit.Do(func() {
		c.commentRepo, err = c.initCommentRepository()
		if err != nil {
			c.initErrors["commentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["commentRepo"]; exists {
		return nil, storedErr
	}
	return c.commentRepo, nil
}

// ActivityRepository returns the last-action lookup the write guard reads.
func (c *Container) ActivityRepository() (authUseCase.LastActionRepository, error) {
	var err error
	c.activityRepoInit.Do(func() {
		c.activityRepo, err = c.initActivityRepository()
		if err != nil {
			c.initErrors["activityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["activityRepo"]; exists {
		return nil, storedErr
	}
	return c.activityRepo, nil
}

// ArticleUseCase returns the article use case.
func (c *Container) ArticleUseCase() (boardUseCase.ArticleUseCase, error) {
	var err error
	c.articleUseCaseInit.Do(func() {
		c.articleUseCase, err = c.initArticleUseCase()
		if err != nil {
			c.initErrors["articleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleUseCase"]; exists {
		return nil, storedErr
	}
	return c.articleUseCase, nil
}

// CommentUseCase returns the comment use case.
func (c *Container) CommentUseCase() (boardUseCase.CommentUseCase, error) {
	var err error
	c.commentUseCaseInit.Do(func() {
		c.commentUseCase, err = c.initCommentUseCase()
		if err != nil {
			c.initErrors["commentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["commentUseCase"]; exists {
		return nil, storedErr
	}
	return c.commentUseCase, nil
}

// ArticleHandler returns the HTTP handler for articles.
func (c *Container) ArticleHandler() (*boardHTTP.ArticleHandler, error) {
	var err error
	c.articleHandlerInit.Do(func() {
		var useCase boardUseCase.ArticleUseCase
		useCase, err = c.ArticleUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get article use case for article handler: %w", err)
			c.initErrors["articleHandler"] = err
			return
		}
		c.articleHandler = boardHTTP.NewArticleHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleHandler"]; exists {
		return nil, storedErr
	}
	return c.articleHandler, nil
}

// CommentHandler returns the HTTP handler for comments.
func (c *Container) CommentHandler() (*boardHTTP.CommentHandler, error) {
	var err error
	c.commentHandlerInit.Do(func() {
		var useCase boardUseCase.CommentUseCase
		useCase, err = c.CommentUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get comment use case for comment handler: %w", err)
			c.initErrors["commentHandler"] = err
			return
		}
		c.commentHandler = boardHTTP.NewCommentHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["commentHandler"]; exists {
		return nil, storedErr
	}
	return c.commentHandler, nil
}

// initArticleRepository creates the article repository based on the database driver.
func (c *Container) initArticleRepository() (boardUseCase.ArticleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for article repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return boardRepository.NewPostgreSQLArticleRepository(db), nil
	case "mysql":
		return boardRepository.NewMySQLArticleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCommentRepository creates the comment repository based on the database driver.
func (c *Container) initCommentRepository() (boardUseCase.CommentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for comment repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return boardRepository.NewPostgreSQLCommentRepository(db), nil
	case "mysql":
		return boardRepository.NewMySQLCommentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initActivityRepository creates the activity repository based on the database driver.
func (c *Container) initActivityRepository() (authUseCase.LastActionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for activity repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return boardRepository.NewPostgreSQLActivityRepository(db), nil
	case "mysql":
		return boardRepository.NewMySQLActivityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initArticleUseCase creates the article use case guarded by the write guard.
func (c *Container) initArticleUseCase() (boardUseCase.ArticleUseCase, error) {
	repo, err := c.ArticleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get article repository for article use case: %w", err)
	}

	guard, err := c.WriteGuardUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get write guard for article use case: %w", err)
	}

	baseUseCase := boardUseCase.NewArticleUseCase(repo, guard, nil, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for article use case: %w", err)
		}
		return boardUseCase.NewArticleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCommentUseCase creates the comment use case guarded by the write guard.
func (c *Container) initCommentUseCase() (boardUseCase.CommentUseCase, error) {
	articleRepo, err := c.ArticleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get article repository for comment use case: %w", err)
	}

	commentRepo, err := c.CommentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment repository for comment use case: %w", err)
	}

	guard, err := c.WriteGuardUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get write guard for comment use case: %w", err)
	}

	baseUseCase := boardUseCase.NewCommentUseCase(articleRepo, commentRepo, guard, nil, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for comment use case: %w", err)
		}
		return boardUseCase.NewCommentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
